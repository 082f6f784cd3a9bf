// Copyright 2025 Sri Panyam
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nilproto/protots/internal/logging"
	"github.com/nilproto/protots/pkg/compiler"
	"github.com/nilproto/protots/pkg/compilerrors"
)

func main() {
	var srcDir, outDir string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "protots",
		Short: "protots compiles proto3 message schemas to TypeScript encode/decode code",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(verbose)
			defer logger.Sync()

			exitCode, err := compiler.Run(srcDir, outDir, logger)
			if err != nil {
				printChain(err)
			}
			if exitCode != compiler.ExitOK {
				os.Exit(exitCode)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&srcDir, "src", "", "directory of .proto sources to compile (required)")
	rootCmd.Flags().StringVar(&outDir, "out", "", "directory generated TypeScript is written to (required)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "force debug-level logging regardless of PROTOTS_LOG")
	rootCmd.MarkFlagRequired("src")
	rootCmd.MarkFlagRequired("out")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printChain renders a *compilerrors.CompilerError's scope chain to stderr;
// any other error (should not normally reach main) prints as-is.
func printChain(err error) {
	if ce, ok := err.(*compilerrors.CompilerError); ok {
		fmt.Fprintln(os.Stderr, ce.Error())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
