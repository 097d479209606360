package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"seededrand/lcg"
)

var sampleOps = []string{"int", "intn", "long", "bool", "float", "double", "gaussian", "bytes"}

func newSampleCmd() *cobra.Command {
	var (
		seed  int64
		op    string
		bound int32
		count int
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the LCG sequence for a seed, one value per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSample(cmd.OutOrStdout(), lcg.New(seed), op, bound, count)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&seed, "seed", 0, "stream seed")
	flags.StringVar(&op, "op", "int", fmt.Sprintf("operation, one of %v", sampleOps))
	flags.Int32Var(&bound, "bound", 10, "exclusive upper bound for intn")
	flags.IntVar(&count, "count", 10, "number of values (bytes for op=bytes)")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func writeSample(out io.Writer, s *lcg.Stream, op string, bound int32, count int) error {
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}

	w := bufio.NewWriter(out)
	if op == "bytes" {
		buf := make([]byte, count)
		s.Bytes(buf)
		for _, b := range buf {
			fmt.Fprintln(w, b)
		}
		return w.Flush()
	}

	for i := 0; i < count; i++ {
		var line string
		switch op {
		case "int":
			line = strconv.FormatInt(int64(s.Int32()), 10)
		case "intn":
			v, err := s.Int32N(bound)
			if err != nil {
				return err
			}
			line = strconv.FormatInt(int64(v), 10)
		case "long":
			line = strconv.FormatInt(s.Int64(), 10)
		case "bool":
			line = strconv.FormatBool(s.Bool())
		case "float":
			line = strconv.FormatFloat(float64(s.Float32()), 'g', -1, 32)
		case "double":
			line = strconv.FormatFloat(s.Float64(), 'g', -1, 64)
		case "gaussian":
			line = strconv.FormatFloat(s.NormFloat64(), 'g', -1, 64)
		default:
			return fmt.Errorf("unknown op %q, want one of %v", op, sampleOps)
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}
