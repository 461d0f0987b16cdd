package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and change your account",
}

var (
	profName     string
	profPhone    string
	profLocation string
	profHeadline string
	profLinkedIn string

	prefLanguage string
	prefTemplate string
	prefTone     string
	prefEmail    bool
	prefDigest   bool

	exportDir     string
	deleteConfirm bool
)

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

var profilePreferencesCmd = &cobra.Command{
	Use:   "preferences",
	Short: "Show preferences, or change them with flags",
	Args:  cobra.NoArgs,
	RunE:  runProfilePreferences,
}

var profileExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a copy of your data",
	Args:  cobra.NoArgs,
	RunE:  runProfileExport,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete-account",
	Short: "Permanently delete your account",
	Args:  cobra.NoArgs,
	RunE:  runProfileDelete,
}

func init() {
	u := profileUpdateCmd.Flags()
	u.StringVar(&profName, "name", "", "Full name")
	u.StringVar(&profPhone, "phone", "", "Phone number")
	u.StringVar(&profLocation, "location", "", "Location")
	u.StringVar(&profHeadline, "headline", "", "Headline")
	u.StringVar(&profLinkedIn, "linkedin", "", "LinkedIn profile URL")

	p := profilePreferencesCmd.Flags()
	p.StringVar(&prefLanguage, "language", "", "Interface language")
	p.StringVar(&prefTemplate, "template", "", "Default CV template id")
	p.StringVar(&prefTone, "tone", "", "Default tone for generated text")
	p.BoolVar(&prefEmail, "email-notifications", false, "Receive email notifications")
	p.BoolVar(&prefDigest, "weekly-digest", false, "Receive the weekly digest")

	profileExportCmd.Flags().StringVar(&exportDir, "dir", "", "Directory to save into (default download_dir)")
	profileDeleteCmd.Flags().BoolVar(&deleteConfirm, "yes", false, "Confirm deletion")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd, profilePreferencesCmd, profileExportCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	profile, err := a.client.Users().Profile(ctxOf(cmd))
	if err != nil {
		return err
	}
	return a.render(profile, func() { a.printer.PrintProfile(profile) })
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	req := &types.UpdateProfileRequest{
		FullName:    profName,
		Phone:       profPhone,
		Location:    profLocation,
		Headline:    profHeadline,
		LinkedInURL: profLinkedIn,
	}
	if *req == (types.UpdateProfileRequest{}) {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	profile, err := a.client.Users().UpdateProfile(ctxOf(cmd), req)
	if err != nil {
		return err
	}
	return a.render(profile, func() { a.printer.PrintProfile(profile) })
}

// runProfilePreferences reads the current preferences and, when any flag
// was given, writes back only the fields that were set.
func runProfilePreferences(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := ctxOf(cmd)
	prefs, err := a.client.Users().Preferences(ctx)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	changed := false
	apply := func(name string, set func()) {
		if flags.Changed(name) {
			set()
			changed = true
		}
	}
	apply("language", func() { prefs.Language = prefLanguage })
	apply("template", func() { prefs.DefaultTemplateID = prefTemplate })
	apply("tone", func() { prefs.DefaultTone = prefTone })
	apply("email-notifications", func() { prefs.EmailNotifications = prefEmail })
	apply("weekly-digest", func() { prefs.WeeklyDigest = prefDigest })

	if changed {
		prefs, err = a.client.Users().UpdatePreferences(ctx, prefs)
		if err != nil {
			return err
		}
	}
	return a.render(prefs, func() { a.printer.PrintPreferences(prefs) })
}

func runProfileExport(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	blob, err := a.client.Users().ExportData(ctxOf(cmd))
	if err != nil {
		return err
	}
	return a.saveBlob(blob, exportDir, "jobdesk-export"+blob.Extension())
}

func runProfileDelete(cmd *cobra.Command, _ []string) error {
	if !deleteConfirm {
		return fmt.Errorf("refusing to delete the account without --yes")
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.client.Users().DeleteAccount(ctxOf(cmd)); err != nil {
		return err
	}
	a.session.SignOut()
	a.printer.Message("Account deleted.")
	return nil
}
