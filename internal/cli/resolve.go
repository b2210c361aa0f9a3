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
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/tochemey/userdir/directory"
	"github.com/tochemey/userdir/record"
)

var (
	identityColor = color.New(color.FgGreen)
	warnColor     = color.New(color.FgYellow)
)

// ResolveCmd resolves identity strings and creates the missing records.
func ResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [input...]",
		Short: "Resolve identity strings into user records",
		Long:  "Resolve mentions, profile links, screen names or numeric ids, creating the records that do not exist yet.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
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

			out := cmd.OutOrStdout()
			for _, input := range args {
				rec, err := app.dir.ResolveOrCreate(ctx, input)
				if err != nil {
					return err
				}
				if rec == nil {
					warnColor.Fprintf(out, "%s: not a user\n", input)
					continue
				}
				printRecord(out, rec)
			}
			return nil
		},
	}
	return cmd
}

func printRecord(w io.Writer, rec *record.Record) {
	url, _ := rec.Invoke(directory.MethodURL)
	name := rec.DisplayName()
	if secondary := rec.SecondaryName(); secondary != "" {
		name += " " + secondary
	}
	fmt.Fprintf(w, "%s\t%s\t%v\n", identityColor.Sprint(rec.Identity()), name, url)
}
