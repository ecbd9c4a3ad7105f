//go:build !tinygo

// Command mkflash inspects and edits the persisted store inside a host
// flash image, e.g. to start the app from a given percentage.
package main

import (
	"fmt"
	"io"
	"os"

	"modcalc/hal"
	"modcalc/watch/persist"
	"modcalc/watch/tasks/modcalc"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flashPath string

	root := &cobra.Command{
		Use:          "mkflash",
		Short:        "Inspect and edit the persisted store in a flash image",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flashPath, "flash", hal.FlashPathFromEnv(), "flash image path")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the persisted oxygen percentage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(flashPath, func(s *persist.FlashStore) error {
				return printPercent(cmd.OutOrStdout(), s)
			})
		},
	}

	var percent int
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Write the oxygen percentage the app starts from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if percent < modcalc.MinPercent || percent > modcalc.MaxPercent {
				return fmt.Errorf("percent %d outside [%d,%d]", percent, modcalc.MinPercent, modcalc.MaxPercent)
			}
			return withStore(flashPath, func(s *persist.FlashStore) error {
				if err := s.WriteInt(modcalc.PersistKey, int32(percent)); err != nil {
					return err
				}
				return printPercent(cmd.OutOrStdout(), s)
			})
		},
	}
	setCmd.Flags().IntVar(&percent, "percent", modcalc.DefaultPercent, "oxygen percentage")

	eraseCmd := &cobra.Command{
		Use:   "erase",
		Short: "Erase the store region so the app starts from defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hal.OpenFlashImage(flashPath)
			if err != nil {
				return err
			}
			defer f.Close()
			off, size := persist.LastBlock(f)
			if err := f.Erase(off, size); err != nil {
				return fmt.Errorf("erase store: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "erased %d bytes at %#x\n", size, off)
			return nil
		},
	}

	root.AddCommand(showCmd, setCmd, eraseCmd)
	return root
}

func withStore(path string, fn func(*persist.FlashStore) error) error {
	f, err := hal.OpenFlashImage(path)
	if err != nil {
		return err
	}
	defer f.Close()

	off, size := persist.LastBlock(f)
	s, err := persist.OpenFlash(f, off, size)
	if err != nil {
		return err
	}
	return fn(s)
}

func printPercent(w io.Writer, s *persist.FlashStore) error {
	if !s.Exists(modcalc.PersistKey) {
		fmt.Fprintf(w, "percent: unset (app starts at %d)\n", modcalc.DefaultPercent)
		return nil
	}
	v, err := s.ReadInt(modcalc.PersistKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "percent: %d (MOD %d feet)\n", v, modcalc.MOD(int(v)))
	if n := s.Skipped(); n > 0 {
		fmt.Fprintf(w, "skipped %d corrupt records\n", n)
	}
	return nil
}
