package cli

import (
	"fmt"
	"strconv"

	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a vital sign reading against a patient's baseline",
}

var checkBPCmd = &cobra.Command{
	Use:   "bp <patient-id> <upper> <lower>",
	Short: "Check a blood pressure reading",
	Args:  cobra.ExactArgs(3),
	RunE:  runCheckBP,
}

var checkTempCmd = &cobra.Command{
	Use:   "temp <patient-id> <temperature>",
	Short: "Check a body temperature reading",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheckTemp,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkBPCmd, checkTempCmd)
}

func runCheckBP(cmd *cobra.Command, args []string) error {
	reading, err := parseBloodPressure(args[1], args[2])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, store, err := initMonitor(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	alerted, err := m.CheckBloodPressure(cmd.Context(), args[0], reading)
	if err != nil {
		return err
	}
	printResult(cmd, args[0], reading.String(), alerted)
	return nil
}

func parseBloodPressure(upper, lower string) (model.BloodPressure, error) {
	u, err := strconv.Atoi(upper)
	if err != nil {
		return model.BloodPressure{}, fmt.Errorf("invalid upper pressure %q: %w", upper, err)
	}
	l, err := strconv.Atoi(lower)
	if err != nil {
		return model.BloodPressure{}, fmt.Errorf("invalid lower pressure %q: %w", lower, err)
	}
	if u <= 0 || l <= 0 {
		return model.BloodPressure{}, fmt.Errorf("upper and lower must be positive, got %d/%d", u, l)
	}
	return model.BloodPressure{Upper: u, Lower: l}, nil
}

func runCheckTemp(cmd *cobra.Command, args []string) error {
	reading, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid temperature %q: %w", args[1], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, store, err := initMonitor(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	alerted, err := m.CheckTemperature(cmd.Context(), args[0], reading)
	if err != nil {
		return err
	}
	printResult(cmd, args[0], reading.String(), alerted)
	return nil
}

func printResult(cmd *cobra.Command, id, reading string, alerted bool) {
	status := "normal"
	if alerted {
		status = "ALERT SENT"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Patient %s reading %s: %s\n", id, reading, status)
}
