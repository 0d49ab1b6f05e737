package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var patientCmd = &cobra.Command{
	Use:   "patient",
	Short: "Manage the patient directory",
}

var patientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create or update a patient baseline",
	RunE:  runPatientAdd,
}

var patientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patients and their baselines",
	RunE:  runPatientList,
}

var patientShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single patient",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatientShow,
}

var patientRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a patient",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatientRemove,
}

var patientSeedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load patients from a YAML seed file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatientSeed,
}

func init() {
	rootCmd.AddCommand(patientCmd)
	patientCmd.AddCommand(patientAddCmd, patientListCmd, patientShowCmd, patientRemoveCmd, patientSeedCmd)

	patientAddCmd.Flags().String("id", "", "Patient id (generated when empty)")
	patientAddCmd.Flags().String("first-name", "", "First name")
	patientAddCmd.Flags().String("last-name", "", "Last name")
	patientAddCmd.Flags().String("birth-date", "", "Birth date (YYYY-MM-DD)")
	patientAddCmd.Flags().String("temperature", "36.6", "Normal body temperature")
	patientAddCmd.Flags().Int("bp-upper", 120, "Normal systolic pressure")
	patientAddCmd.Flags().Int("bp-lower", 80, "Normal diastolic pressure")
}

func runPatientAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetString("id")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	birth, _ := cmd.Flags().GetString("birth-date")
	temp, _ := cmd.Flags().GetString("temperature")
	upper, _ := cmd.Flags().GetInt("bp-upper")
	lower, _ := cmd.Flags().GetInt("bp-lower")

	if id == "" {
		id = uuid.New().String()
	}
	normalTemp, err := decimal.NewFromString(temp)
	if err != nil {
		return fmt.Errorf("invalid temperature %q: %w", temp, err)
	}
	if upper <= 0 || lower <= 0 {
		return fmt.Errorf("blood pressure values must be positive")
	}

	patient := &model.Patient{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Health: model.HealthInfo{
			NormalTemperature: normalTemp,
			NormalPressure:    model.BloodPressure{Upper: upper, Lower: lower},
		},
	}
	if birth != "" {
		d, err := time.Parse(model.BirthDateLayout, birth)
		if err != nil {
			return fmt.Errorf("invalid birth date %q: %w", birth, err)
		}
		patient.BirthDate = d
	}

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SavePatient(cmd.Context(), patient); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Patient saved:\n")
	fmt.Fprintf(out, "  ID:          %s\n", patient.ID)
	fmt.Fprintf(out, "  Name:        %s\n", patient.FullName())
	fmt.Fprintf(out, "  Temperature: %s\n", patient.Health.NormalTemperature)
	fmt.Fprintf(out, "  Pressure:    %s\n", patient.Health.NormalPressure)
	return nil
}

func runPatientList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	patients, err := store.ListPatients(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(patients) == 0 {
		fmt.Fprintln(out, "No patients. Use 'vitals patient add' or 'vitals patient seed' to create some.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tBIRTH DATE\tTEMP\tPRESSURE\n")
	for _, p := range patients {
		birth := "-"
		if !p.BirthDate.IsZero() {
			birth = p.BirthDate.Format(model.BirthDateLayout)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.FullName(), birth,
			p.Health.NormalTemperature, p.Health.NormalPressure,
		)
	}
	return w.Flush()
}

func runPatientShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.GetPatient(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", p.ID)
	fmt.Fprintf(out, "Name:        %s\n", p.FullName())
	if !p.BirthDate.IsZero() {
		fmt.Fprintf(out, "Birth date:  %s\n", p.BirthDate.Format(model.BirthDateLayout))
	}
	fmt.Fprintf(out, "Temperature: %s\n", p.Health.NormalTemperature)
	fmt.Fprintf(out, "Pressure:    %s\n", p.Health.NormalPressure)
	return nil
}

func runPatientRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeletePatient(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Patient %s removed\n", args[0])
	return nil
}

func runPatientSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	patients, err := storage.LoadSeed(args[0])
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := storage.Seed(cmd.Context(), store, patients); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d patients from %s\n", len(patients), args[0])
	return nil
}
