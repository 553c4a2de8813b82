package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/internal/core/domain"
	"github.com/posa-app/posa-cli/internal/core/services"
	"github.com/posa-app/posa-cli/pkg/ui"
)

var (
	encounterLocation string
	encounterDetails  string
	encounterDate     string
	encounterPhoto    string
	encounterLabel    int
)

// encounterCmd groups the encounter subcommands
var encounterCmd = &cobra.Command{
	Use:     "encounter",
	Short:   "Manage a cat's encounters",
	Aliases: []string{"enc"},
	Long: `Record, edit, and remove encounters with a cat.

Examples:
  posa encounter add whiskers --location "Porch" --details "Let me pet her"
  posa encounter edit whiskers 3 --details "Actually it was a different porch"
  posa encounter rm whiskers 3`,
}

var encounterAddCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Record a new encounter",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEncounterAdd,
}

var encounterEditCmd = &cobra.Command{
	Use:   "edit [query] [number]",
	Short: "Edit an encounter by its number",
	Args:  cobra.ExactArgs(2),
	RunE:  runEncounterEdit,
}

var encounterRmCmd = &cobra.Command{
	Use:     "rm [query] [number]",
	Short:   "Remove an encounter by its number",
	Aliases: []string{"delete"},
	Args:    cobra.ExactArgs(2),
	RunE:    runEncounterRm,
}

func init() {
	encounterAddCmd.Flags().StringVarP(&encounterLocation, "location", "l", "", "Where you met the cat")
	encounterAddCmd.Flags().StringVarP(&encounterDetails, "details", "d", "", "What happened")
	encounterAddCmd.Flags().StringVar(&encounterDate, "date", "", "Encounter date (defaults to today)")
	encounterAddCmd.Flags().StringVarP(&encounterPhoto, "photo", "p", "", "Photo path or URL (required)")
	encounterAddCmd.Flags().IntVar(&encounterLabel, "number", 0, "Explicit encounter number (defaults to the next)")
	encounterAddCmd.MarkFlagRequired("photo")

	encounterEditCmd.Flags().StringVarP(&encounterLocation, "location", "l", "", "New location")
	encounterEditCmd.Flags().StringVarP(&encounterDetails, "details", "d", "", "New details")
	encounterEditCmd.Flags().StringVar(&encounterDate, "date", "", "New date")
	encounterEditCmd.Flags().StringVarP(&encounterPhoto, "photo", "p", "", "New photo path or URL")

	encounterCmd.AddCommand(encounterAddCmd)
	encounterCmd.AddCommand(encounterEditCmd)
	encounterCmd.AddCommand(encounterRmCmd)
}

func runEncounterAdd(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	cat, err := selectCat(query)
	if err != nil || cat == nil {
		return err
	}

	ctx := getContext()
	managedPhoto, err := photoService.Import(ctx, services.PhotoSource{URI: encounterPhoto})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to save the photo"))
		return err
	}

	draft := services.EncounterDraft{
		Location: encounterLocation,
		Details:  encounterDetails,
		Photo:    managedPhoto,
		Label:    encounterLabel,
	}
	enc, err := catService.AddEncounter(ctx, cat.ID, draft)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to record encounter"))
		return err
	}

	// Explicit dates bypass the default stamp
	if cmd.Flags().Changed("date") {
		if err := catService.UpdateEncounter(ctx, cat.ID, enc.ID, services.UpdateEncounterRequest{
			Date: &encounterDate,
		}); err != nil {
			fmt.Println(ui.FormatWarning("Encounter recorded, but the date could not be set"))
			return err
		}
		enc.Date = encounterDate
	}

	fmt.Println(ui.FormatPaw(fmt.Sprintf("Encounter #%d recorded for %s", enc.Label, ui.StyleBold.Render(cat.Name))))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Date", enc.Date))
	fmt.Println(ui.RenderKeyValue("Location", enc.Location))
	fmt.Println(ui.RenderKeyValue("Details", enc.Details))

	return nil
}

func runEncounterEdit(cmd *cobra.Command, args []string) error {
	cat, enc, err := findEncounterByNumber(args[0], args[1])
	if err != nil || enc == nil {
		return err
	}

	ctx := getContext()
	req := services.UpdateEncounterRequest{}
	changed := false

	if cmd.Flags().Changed("location") {
		req.Location = &encounterLocation
		changed = true
	}
	if cmd.Flags().Changed("details") {
		req.Details = &encounterDetails
		changed = true
	}
	if cmd.Flags().Changed("date") {
		req.Date = &encounterDate
		changed = true
	}
	if cmd.Flags().Changed("photo") {
		managedPhoto, err := photoService.Import(ctx, services.PhotoSource{URI: encounterPhoto})
		if err != nil {
			fmt.Println(ui.FormatError("Failed to save the new photo"))
			return err
		}
		req.Photo = &managedPhoto
		changed = true
	}

	if !changed {
		fmt.Println(ui.FormatWarning("Nothing to change"))
		fmt.Println(ui.FormatInfo("Pass at least one of --location, --details, --date, --photo"))
		return nil
	}

	if err := catService.UpdateEncounter(ctx, cat.ID, enc.ID, req); err != nil {
		fmt.Println(ui.FormatError("Failed to update encounter"))
		return err
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Encounter #%d updated.", enc.Label)))
	return nil
}

func runEncounterRm(cmd *cobra.Command, args []string) error {
	cat, enc, err := findEncounterByNumber(args[0], args[1])
	if err != nil || enc == nil {
		return err
	}

	if appConfig.ConfirmDelete {
		prompt := ui.StyleError.Render(fmt.Sprintf("Remove encounter #%d with %s? (y/n): ", enc.Label, cat.Name))
		if !confirm(prompt) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := catService.DeleteEncounter(getContext(), cat.ID, enc.ID); err != nil {
		fmt.Println(ui.FormatError("Failed to remove encounter"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Encounter removed."))
	return nil
}

// findEncounterByNumber resolves a cat query plus an encounter number
// to the matching encounter. A nil encounter with a nil error means the
// caller has already been told why.
func findEncounterByNumber(query, number string) (*domain.Cat, *domain.Encounter, error) {
	label, err := strconv.Atoi(number)
	if err != nil {
		fmt.Println(ui.FormatWarning("Encounter number must be a number, got: " + number))
		return nil, nil, nil
	}

	cat, err := selectCat(query)
	if err != nil || cat == nil {
		return nil, nil, err
	}

	for i := range cat.Encounters {
		if cat.Encounters[i].Label == label {
			return cat, &cat.Encounters[i], nil
		}
	}

	fmt.Println(ui.FormatWarning(fmt.Sprintf("%s has no encounter #%d", cat.Name, label)))
	return nil, nil, nil
}
