package cmd

import (
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/WolofBridge/internal/config"
	"github.com/Rorical/WolofBridge/internal/core"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage backend profiles",
	Long:  `Manage profiles for different translation backends and request policies.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range profileNames(cfg, "") {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Endpoint: %s\n", profile.Endpoint)
			fmt.Printf("    Policy: %s\n", policyName(profile.Policy))
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Endpoint: %s\n", profile.Endpoint)
		fmt.Printf("Policy: %s\n", policyName(profile.Policy))
		if profile.TimeoutSeconds > 0 {
			fmt.Printf("Timeout: %ds\n", profile.TimeoutSeconds)
		} else {
			fmt.Println("Timeout: none")
		}
		if err := profile.Validate(); err != nil {
			fmt.Printf("Problem: %v\n", err)
		}
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{Label: "Profile name"}
			var err error
			if profileName, err = prompt.Run(); err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(config.NewDefaultConfig().Profiles[config.DefaultProfile])
		mustSave(cfg)

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := selectProfile(cfg, args, "Select profile to edit", "")
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(profile)
		mustSave(cfg)

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := selectProfile(cfg, args, "Select profile to delete", "")

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		if err := cfg.Delete(profileName); err != nil {
			log.Fatalf("%v", err)
		}
		mustSave(cfg)

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		if len(args) == 0 && len(profileNames(cfg, cfg.ActiveProfile)) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}
		profileName := selectProfile(cfg, args, "Select profile to switch to", cfg.ActiveProfile)

		if err := cfg.Use(profileName); err != nil {
			log.Fatalf("%v", err)
		}
		mustSave(cfg)

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func mustSave(cfg *config.Config) {
	if err := cfg.Save(); err != nil {
		log.Fatalf("Failed to save config: %v", err)
	}
}

// profileNames lists profile names in order, leaving out exclude.
func profileNames(cfg *config.Config, exclude string) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if name != exclude {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// selectProfile takes the name from args or asks the user to pick one.
func selectProfile(cfg *config.Config, args []string, label, exclude string) string {
	if len(args) > 0 {
		return args[0]
	}

	names := profileNames(cfg, exclude)
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{Label: label, Items: names}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func promptProfile(current config.Profile) config.Profile {
	endpointPrompt := promptui.Prompt{
		Label:   "Backend endpoint",
		Default: current.Endpoint,
		Validate: func(input string) error {
			u, err := url.Parse(input)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("enter an http(s) URL")
			}
			return nil
		},
	}
	endpoint, err := endpointPrompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}

	policies := []string{string(core.PolicyDisableTrigger), string(core.PolicyCancelInFlight)}
	policyPrompt := promptui.Select{
		Label:     "Request policy",
		Items:     policies,
		CursorPos: indexOf(policies, policyName(current.Policy)),
	}
	_, policy, err := policyPrompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}

	timeoutPrompt := promptui.Prompt{
		Label:   "Timeout in seconds (0 for none)",
		Default: strconv.Itoa(current.TimeoutSeconds),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n < 0 {
				return fmt.Errorf("enter a whole number of seconds")
			}
			return nil
		},
	}
	timeout, err := timeoutPrompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	seconds, _ := strconv.Atoi(timeout)

	return config.Profile{Endpoint: endpoint, Policy: policy, TimeoutSeconds: seconds}
}

func policyName(policy string) string {
	p, err := core.ParseRequestPolicy(policy)
	if err != nil {
		return policy + " (invalid)"
	}
	return string(p)
}

func indexOf(items []string, item string) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return 0
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
