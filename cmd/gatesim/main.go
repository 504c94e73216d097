// Command gatesim loads a netlist and a test-vector file, simulates every
// vector, and reports per-vector pass/fail (spec §6). Exit code is 0 iff
// every vector passes, 1 otherwise (including load failures).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/74series/gatesim"
	"github.com/74series/gatesim/internal/netlist"
	"github.com/74series/gatesim/internal/vectorfile"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

func main() {
	// Optional .env file for GATESIM_* settings; absence is not an error.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GATESIM")
	v.AutomaticEnv()
	v.SetDefault("max_iterations", gatesim.DefaultIterationCap)

	cmd := &cobra.Command{
		Use:   "gatesim <netlist> <vectors>",
		Short: "Gate-level functional simulator for 74-series ICs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(v, args[0], args[1])
		},
	}
	cmd.Flags().Int("max-iterations", 0, "propagation fixed-point iteration cap (default 8)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log each vector's result")
	_ = v.BindPFlag("max_iterations", cmd.Flags().Lookup("max-iterations"))

	return cmd
}

func runSimulation(v *viper.Viper, netlistPath, vectorsPath string) error {
	netlistData, err := os.ReadFile(netlistPath)
	if err != nil {
		log.Printf("load netlist: %v", err)
		return err
	}
	circuit, err := netlist.Load(netlistPath, netlistData)
	if err != nil {
		log.Printf("parse netlist: %v", err)
		return err
	}
	if err := circuit.Validate(); err != nil {
		log.Printf("invalid netlist: %v", err)
		return err
	}

	if cap := v.GetInt("max_iterations"); cap > 0 {
		circuit.IterationCap = cap
	}

	vectorData, err := os.ReadFile(vectorsPath)
	if err != nil {
		log.Printf("load vectors: %v", err)
		return err
	}
	vectors, err := vectorfile.Load(vectorsPath, vectorData, circuit)
	if err != nil {
		log.Printf("parse vectors: %v", err)
		return err
	}

	result, err := gatesim.Run(circuit, vectors)
	if err != nil {
		log.Printf("simulate: %v", err)
		return err
	}

	report(result)
	if !result.Passed() {
		return fmt.Errorf("%d vector(s) failed", failedCount(result))
	}
	return nil
}

func report(result gatesim.Result) {
	for _, vr := range result.Vectors {
		status := "PASS"
		if !vr.Passed() {
			status = "FAIL"
		}
		if verbose || !vr.Passed() {
			log.Printf("[%s] %s", status, vr.Vector.Description)
			for _, m := range vr.Mismatches {
				log.Printf("  %s", m.Error())
			}
		}
	}
	log.Printf("%d/%d vectors passed", passedCount(result), len(result.Vectors))
}

func passedCount(result gatesim.Result) int {
	n := 0
	for _, vr := range result.Vectors {
		if vr.Passed() {
			n++
		}
	}
	return n
}

func failedCount(result gatesim.Result) int {
	return len(result.Vectors) - passedCount(result)
}
