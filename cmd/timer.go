package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/timer"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Start a Pomodoro study timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		work, brk := cfg.PomodoroWork, cfg.PomodoroBreak
		if cmd.Flags().Changed("work") {
			work, _ = cmd.Flags().GetDuration("work")
		}
		if cmd.Flags().Changed("break") {
			brk, _ = cmd.Flags().GetDuration("break")
		}
		if work <= 0 || brk <= 0 {
			return fmt.Errorf("work and break durations must be positive")
		}
		cycles, _ := cmd.Flags().GetInt("cycles")
		start, _ := cmd.Flags().GetBool("start")

		p := timer.NewPomodoro(work, brk, cycles)
		if start {
			p.Start()
		}
		logger.Debug("starting timer", "work", work, "break", brk, "cycles", cycles)
		done, err := timer.Run(p, "Pomodoro")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Completed %d work sessions.\n", done)
		return nil
	},
}

func init() {
	timerCmd.Flags().Duration("work", 0, "Work interval (default from PACER_POMODORO_WORK, 25m)")
	timerCmd.Flags().Duration("break", 0, "Break interval (default from PACER_POMODORO_BREAK, 5m)")
	timerCmd.Flags().Int("cycles", 4, "Work intervals before the timer stops, 0 for no limit")
	timerCmd.Flags().Bool("start", false, "Start counting immediately")
}
