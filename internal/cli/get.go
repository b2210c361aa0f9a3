// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/tochemey/userdir/errors"
)

// GetCmd prints a record by identity.
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [identity]",
		Short: "Print a user record",
		Long:  "Print the record of an identity. Negative identities are collectives and follow a -- separator. With --create a missing record is fetched and created.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			identity, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || identity == 0 {
				return errors.NewErrInvalidIdentity(err)
			}
			create, _ := cmd.Flags().GetBool("create")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			app, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, app.close(ctx))
			}()

			get := app.dir.Get
			if create {
				get = app.dir.GetOrCreate
			}
			rec, err := get(ctx, identity)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("identity=(%d) not found", identity)
			}
			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	cmd.Flags().Bool("create", false, "create the record when it does not exist")
	return cmd
}
