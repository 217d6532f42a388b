package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Astreocclu/pool-visualizer/pkg/models"
	"github.com/Astreocclu/pool-visualizer/pkg/output"
	"github.com/Astreocclu/pool-visualizer/pkg/tenants"
	"github.com/Astreocclu/pool-visualizer/pkg/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the configuration wizard",
}

var wizardStepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the wizard steps for the tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		descriptor := application.registry.Config(flagTenant)

		table := output.NewTable("#", "STEP", "LABEL")
		for i, step := range descriptor.Steps {
			table.AddRow(strconv.Itoa(i+1), string(step.Kind), step.Label)
		}
		return application.print(cmd, table)
	},
}

var wizardRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Walk through the wizard and submit a visualization request",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer application.reporter.Recover("wizard run")

		sess := wizard.NewSession(application.registry, flagTenant, application.store, application.logger)
		sess.SetMaxUploadSize(application.cfg.MaxUploadBytes)

		reader := bufio.NewScanner(os.Stdin)
		runner := &wizardRunner{cmd: cmd, session: sess, reader: reader}

		req, err := runner.run(cmd)
		if err != nil {
			application.reporter.ReportError("wizard run", err)
			return err
		}

		cmd.Printf("Visualization request %d created. Watching progress...\n", req.ID)
		return watchRequest(cmd, req.ID)
	},
}

type wizardRunner struct {
	cmd     *cobra.Command
	session *wizard.Session
	reader  *bufio.Scanner
}

func (r *wizardRunner) run(cmd *cobra.Command) (*models.VisualizationRequest, error) {
	descriptor := r.session.Descriptor()
	cmd.Printf("%s - %s\n", descriptor.Name, descriptor.Description)

	for {
		step := r.session.Step()
		cmd.Printf("\n[%d/%d] %s\n", r.session.Index(), r.session.StepCount(), step.Label)

		if err := r.runStep(step); err != nil {
			return nil, err
		}

		if r.session.AtReview() {
			break
		}
		if err := r.session.Next(); err != nil {
			cmd.Println(err.Error())
		}
	}

	return r.submit()
}

func (r *wizardRunner) runStep(step tenants.Step) error {
	switch step.Kind {
	case tenants.StepPoolSizeShape:
		return r.promptKeys("size", "shape")
	case tenants.StepPoolFinish:
		if err := r.promptKeys("finish"); err != nil {
			return err
		}
		if err := r.promptBool("tanning_ledge", "Add a tanning ledge?"); err != nil {
			return err
		}
		if err := r.promptCount("lounger_count", "How many in-pool loungers?"); err != nil {
			return err
		}
		return r.promptBool("attached_spa", "Add an attached spa?")
	case tenants.StepDeck:
		return r.promptKeys("deck_material", "deck_color")
	case tenants.StepWaterFeatures:
		return r.promptWaterFeatures()
	case tenants.StepFinishing:
		return r.promptKeys("lighting", "landscaping", "furniture")
	case tenants.StepProjectType:
		if err := r.promptKeys("project_type"); err != nil {
			return err
		}
		return r.promptScope()
	case tenants.StepDoorType:
		return r.promptKeys("door_type")
	case tenants.StepWindowType:
		return r.promptKeys("window_type", "window_style")
	case tenants.StepFrameMaterial:
		return r.promptKeys("frame_material", "frame_color")
	case tenants.StepGrillePattern:
		return r.promptKeys("grille_pattern", "glass_option")
	case tenants.StepHardwareTrim:
		return r.promptKeys("hardware_finish", "trim_style")
	case tenants.StepRoofMaterial:
		return r.promptKeys("roof_material")
	case tenants.StepRoofColor:
		return r.promptKeys("roof_color")
	case tenants.StepSolarOption:
		return r.promptKeys("solar_option")
	case tenants.StepGutterOption:
		return r.promptKeys("gutter_option")
	case tenants.StepUpload:
		return r.promptUpload()
	case tenants.StepReview:
		r.printReview()
		return nil
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *wizardRunner) promptKeys(keys ...string) error {
	for _, key := range keys {
		options := wizard.OptionsFor(key)
		current, _ := r.session.Get(key)

		r.cmd.Printf("%s (current: %s)\n", key, current.Display())
		for i, opt := range options {
			marker := " "
			if opt.Popular {
				marker = "*"
			}
			if opt.Description != "" {
				r.cmd.Printf("  %d.%s %s - %s\n", i+1, marker, opt.Name, opt.Description)
			} else {
				r.cmd.Printf("  %d.%s %s\n", i+1, marker, opt.Name)
			}
		}

		answer := r.ask("Choice (number, or enter to keep current): ")
		if answer == "" {
			continue
		}

		index, err := strconv.Atoi(answer)
		if err != nil || index < 1 || index > len(options) {
			r.cmd.Println("Invalid choice, keeping current value")
			continue
		}

		if err := r.session.Set(key, models.String(options[index-1].ID)); err != nil {
			return err
		}
	}
	return nil
}

func (r *wizardRunner) promptBool(key, question string) error {
	answer := strings.ToLower(r.ask(question + " (y/N): "))
	return r.session.Set(key, models.Bool(answer == "y" || answer == "yes"))
}

func (r *wizardRunner) promptCount(key, question string) error {
	answer := r.ask(question + " ")
	if answer == "" {
		return nil
	}
	count, err := strconv.Atoi(answer)
	if err != nil || count < 0 {
		r.cmd.Println("Invalid count, keeping current value")
		return nil
	}
	return r.session.Set(key, models.Int(count))
}

func (r *wizardRunner) promptWaterFeatures() error {
	options := wizard.OptionsFor("water_features")

	r.cmd.Println("Select up to 2 water features (comma-separated numbers, or enter to skip):")
	for i, opt := range options {
		r.cmd.Printf("  %d. %s\n", i+1, opt.Name)
	}

	answer := r.ask("Choices: ")
	if answer == "" {
		return nil
	}

	var chosen []string
	for _, part := range strings.Split(answer, ",") {
		index, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || index < 1 || index > len(options) {
			continue
		}
		chosen = append(chosen, options[index-1].ID)
	}

	return r.session.Set("water_features", models.List(chosen...))
}

func (r *wizardRunner) promptScope() error {
	flow := wizard.NewScopeFlow(application.store.Scope())

	for !flow.Done() {
		var err error
		switch flow.Prompt() {
		case wizard.PromptHasWindows:
			err = flow.AnswerBool(r.askBool("Does the project include windows?"))
		case wizard.PromptWindowCount:
			err = flow.AnswerCount(r.askCount("How many windows?"))
		case wizard.PromptHasDoors:
			err = flow.AnswerBool(r.askBool("Does the project include doors?"))
		case wizard.PromptDoorType:
			if err = r.promptKeys("door_type"); err == nil {
				value, _ := r.session.Get("door_type")
				err = flow.AnswerDoorType(value.Str)
			}
		case wizard.PromptDoorCount:
			err = flow.AnswerCount(r.askCount("How many doors?"))
		case wizard.PromptHasPatio:
			err = flow.AnswerBool(r.askBool("Does the project include a patio?"))
		}
		if err != nil {
			return err
		}
	}

	application.store.SetScope(flow.Scope())
	return nil
}

func (r *wizardRunner) promptUpload() error {
	for {
		path := r.ask("Path to the photo: ")
		if path == "" {
			return fmt.Errorf("a photo is required to continue")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			r.cmd.Printf("Could not read %s: %v\n", path, err)
			continue
		}

		upload := wizard.Upload{
			Filename:    path,
			ContentType: wizard.DetectContentType(path),
			Data:        data,
		}
		if err := r.session.SetUpload(upload); err != nil {
			r.cmd.Println(err.Error())
			continue
		}
		return nil
	}
}

func (r *wizardRunner) printReview() {
	r.cmd.Println("Review your selections:")
	for _, line := range r.session.Review() {
		r.cmd.Printf("  %-16s %s\n", line.Key, line.Value.Display())
	}
}

func (r *wizardRunner) submit() (*models.VisualizationRequest, error) {
	answer := strings.ToLower(r.ask("Submit? (Y/n): "))
	if answer == "n" || answer == "no" {
		return nil, fmt.Errorf("submission cancelled")
	}

	upload := r.session.Upload()
	if upload == nil {
		return nil, fmt.Errorf("no photo staged for submission")
	}

	return application.submitter.Submit(
		r.cmd.Context(),
		r.session.Descriptor().ID,
		application.store.Selections(),
		*upload,
	)
}

func (r *wizardRunner) ask(prompt string) string {
	r.cmd.Print(prompt)
	if !r.reader.Scan() {
		return ""
	}
	return strings.TrimSpace(r.reader.Text())
}

func (r *wizardRunner) askBool(question string) bool {
	answer := strings.ToLower(r.ask(question + " (y/N): "))
	return answer == "y" || answer == "yes"
}

func (r *wizardRunner) askCount(question string) int {
	answer := r.ask(question + " ")
	count, err := strconv.Atoi(answer)
	if err != nil || count < 0 {
		return 0
	}
	return count
}

func init() {
	wizardCmd.AddCommand(wizardRunCmd, wizardStepsCmd)
	rootCmd.AddCommand(wizardCmd)
}
