package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusched/sim/workload"
)

// --- cpusched convert ---

var convertInput string

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a process description file to YAML",
	Long:  "Convert a process description file (text or YAML) to the YAML process table format. Output is written to stdout for piping.",
	Run: func(cmd *cobra.Command, args []string) {
		specs, err := workload.LoadFile(convertInput)
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		data, err := yaml.Marshal(workload.FromSpecs(specs))
		if err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
		fmt.Print(string(data))
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "Process description file")
	_ = convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}
