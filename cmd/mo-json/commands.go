// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/mojson/pkg/common/moerr"
	"github.com/matrixorigin/mojson/pkg/config"
	"github.com/matrixorigin/mojson/pkg/container/bytejson"
	"github.com/matrixorigin/mojson/pkg/container/jsonvalue"
	"github.com/matrixorigin/mojson/pkg/jsoncol"
	"github.com/matrixorigin/mojson/pkg/jsonindex"
	"github.com/matrixorigin/mojson/pkg/jsonstore"
	"github.com/matrixorigin/mojson/pkg/logutil"
)

// stubbed by tests
var (
	output   io.Writer = os.Stdout
	readFile           = os.ReadFile
)

type options struct {
	configFile string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "mo-json",
		Short:         "Inspect, compare and load json values",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "toml configuration file")

	cmd.AddCommand(
		parseCommand(opts),
		compareCommand(opts),
		hashCommand(opts),
		loadCommand(opts),
		scanCommand(opts),
		dumpCommand(opts),
	)
	return cmd
}

func (o *options) setup() error {
	if o.configFile == "" {
		o.cfg = config.Default()
	} else {
		cfg, err := config.LoadConfig(o.configFile)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}
	logutil.SetupMOLogger(&o.cfg.Log)
	return nil
}

// render prints v on one line, compact unless the config asks for the
// spaced form.
func (o *options) render(v jsonvalue.Value) (string, error) {
	return v.ToTextWith(bytejson.RenderOptions{SingleLinePretty: o.cfg.Json.PrettyOutput})
}

func parseArg(arg string) (jsonvalue.Value, error) {
	return jsonvalue.FromText([]byte(arg))
}

func parseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <json>",
		Short: "Print the type, canonical text, storage size and hash of a json value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseArg(args[0])
			if err != nil {
				return err
			}
			text, err := opts.render(v)
			if err != nil {
				return err
			}
			fmt.Fprintf(output, "type: %s\ntext: %s\nsize: %d\nhash: %d\n",
				v.Type(), text, v.SerializedSize(), v.Hash())
			return nil
		},
	}
}

func compareCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <json> <json>",
		Short: "Print -1, 0 or 1 as the first value orders before, with or after the second",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lhs, err := parseArg(args[0])
			if err != nil {
				return err
			}
			rhs, err := parseArg(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(output, lhs.Compare(rhs))
			return nil
		},
	}
}

func hashCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <json>",
		Short: "Print the hash of a json value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseArg(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(output, v.Hash())
			return nil
		},
	}
}

func (o *options) loadFile(cmd *cobra.Command, path string) (*jsoncol.Column, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, moerr.NewInvalidInput(cmd.Context(), "read %s: %v", path, err)
	}
	return jsoncol.Load(cmd.Context(), data, o.cfg.Json.MaxDocumentSize)
}

func (o *options) printRow(col *jsoncol.Column, row int, hash int64) error {
	text, err := o.render(col.Get(row))
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "%d\t%d\t%s\n", row, hash, text)
	return nil
}

// rowHash matches jsoncol.HashColumn
func rowHash(col *jsoncol.Column, row int) int64 {
	if col.IsAbsent(row) {
		return 0
	}
	return jsonvalue.HashBytes(col.Bytes(row))
}

func (o *options) printStats(col *jsoncol.Column) error {
	stats := jsoncol.CollectStats(col)
	lo, err := o.render(stats.Min)
	if err != nil {
		return err
	}
	hi, err := o.render(stats.Max)
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "rows: %d, absent: %d, ndv: %d, min: %s, max: %s\n",
		stats.Rows, stats.Absent, stats.NDV, lo, hi)
	return nil
}

func loadCommand(opts *options) *cobra.Command {
	var (
		store  bool
		table  string
		column string
		block  uint64
	)
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load newline delimited json, print its rows in order and its stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := opts.loadFile(cmd, args[0])
			if err != nil {
				return err
			}

			pool, err := jsoncol.NewHashPool(opts.cfg.Worker.HashWorkers)
			if err != nil {
				return err
			}
			defer pool.Release()
			hashes, err := jsoncol.HashColumn(cmd.Context(), pool, col)
			if err != nil {
				return err
			}

			for _, row := range jsoncol.Sort(col) {
				if err = opts.printRow(col, row, hashes[row]); err != nil {
					return err
				}
			}
			if err = opts.printStats(col); err != nil {
				return err
			}

			if !store {
				return nil
			}
			s, err := jsonstore.Open(opts.cfg.Store.Dir, opts.cfg.CompressBlocks())
			if err != nil {
				return err
			}
			defer s.Close()
			if err = s.PutBlock(cmd.Context(), table, column, block, col); err != nil {
				return err
			}
			logutil.Info("stored json block",
				zap.String("table", table),
				zap.String("column", column),
				zap.Uint64("block", block))
			return nil
		},
	}
	cmd.Flags().BoolVar(&store, "store", false, "persist the loaded block in the configured store")
	cmd.Flags().StringVar(&table, "table", "json", "table of the stored block")
	cmd.Flags().StringVar(&column, "column", "doc", "column of the stored block")
	cmd.Flags().Uint64Var(&block, "block", 0, "id of the stored block")
	return cmd
}

func bound(text string, exclusive bool) (jsonindex.Bound, error) {
	if text == "" {
		return jsonindex.Unbounded(), nil
	}
	v, err := parseArg(text)
	if err != nil {
		return jsonindex.Bound{}, err
	}
	if exclusive {
		return jsonindex.Exclusive(v), nil
	}
	return jsonindex.Inclusive(v), nil
}

func scanCommand(opts *options) *cobra.Command {
	var (
		lower, upper                   string
		exclusiveLower, exclusiveUpper bool
	)
	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Load newline delimited json and print the rows within a range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := bound(lower, exclusiveLower)
			if err != nil {
				return err
			}
			hi, err := bound(upper, exclusiveUpper)
			if err != nil {
				return err
			}
			col, err := opts.loadFile(cmd, args[0])
			if err != nil {
				return err
			}
			idx := jsonindex.New(col)
			idx.Scan(lo, hi, func(row int) bool {
				err = opts.printRow(col, row, rowHash(col, row))
				return err == nil
			})
			return err
		},
	}
	cmd.Flags().StringVar(&lower, "lower", "", "lower bound as json text, unbounded when empty")
	cmd.Flags().StringVar(&upper, "upper", "", "upper bound as json text, unbounded when empty")
	cmd.Flags().BoolVar(&exclusiveLower, "exclusive-lower", false, "exclude rows equal to the lower bound")
	cmd.Flags().BoolVar(&exclusiveUpper, "exclusive-upper", false, "exclude rows equal to the upper bound")
	return cmd
}

func dumpCommand(opts *options) *cobra.Command {
	var table, column string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the stored blocks of a column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := jsonstore.Open(opts.cfg.Store.Dir, opts.cfg.CompressBlocks())
			if err != nil {
				return err
			}
			defer s.Close()
			return s.ScanBlocks(cmd.Context(), table, column, func(id uint64, col *jsoncol.Column) error {
				fmt.Fprintf(output, "block %d\n", id)
				for row := 0; row < col.Len(); row++ {
					if err := opts.printRow(col, row, rowHash(col, row)); err != nil {
						return err
					}
				}
				return opts.printStats(col)
			})
		},
	}
	cmd.Flags().StringVar(&table, "table", "json", "table of the blocks")
	cmd.Flags().StringVar(&column, "column", "doc", "column of the blocks")
	return cmd
}
