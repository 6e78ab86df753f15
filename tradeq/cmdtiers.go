// Copyright 2020 The Tradeviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "flag"

func init() {
	registerSubcommand("tiers", "[-yaml] - print the country tiers in effect", func(f *flag.FlagSet) func(*env) error {
		asYAML := f.Bool("yaml", false, "print the tiers as a YAML file for -tiers")

		return func(e *env) error {
			tc, err := e.tierConfig()
			if err != nil {
				return err
			}
			if *asYAML {
				return tc.WriteYAML(e.stdout)
			}
			return e.emit(tc.Table())
		}
	})
}
