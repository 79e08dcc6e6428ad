package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/screen"
)

var mascotCmd = &cobra.Command{
	Use:   "mascot",
	Short: "Generate the bunny mascot as a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		keep, _ := cmd.Flags().GetBool("keep-background")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ai := buildGateway(cmd.Context(), st.EventRepo())
		if !ai.Capabilities().Images {
			return errors.New("no image backend configured")
		}

		img := ai.Mascot(cmd.Context(), gateway.MascotOptions{KeepBackground: keep})
		if img == nil {
			return errors.New("the image backend returned nothing")
		}
		if err := os.WriteFile(out, img.PNG, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Saved %dx%d mascot to %s\n", img.Width, img.Height, out)
		return nil
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak <sentence>",
	Short: "Read a sentence aloud",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		play, _ := cmd.Flags().GetBool("play")
		sentence := strings.Join(args, " ")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ai := buildGateway(cmd.Context(), st.EventRepo())
		wav := ai.Speak(cmd.Context(), sentence)
		if wav == nil {
			return errors.New(screen.SpeechStatus(gateway.ErrNoAudio))
		}

		if out != "" {
			if err := os.WriteFile(out, wav, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("Saved audio to %s\n", out)
		}
		if out == "" || play {
			if err := ai.Play(cmd.Context(), wav); err != nil {
				return errors.New(screen.SpeechStatus(err))
			}
		}
		return nil
	},
}

func init() {
	mascotCmd.Flags().StringP("out", "o", "mascot.png", "Output file")
	mascotCmd.Flags().Bool("keep-background", false, "Keep the white background")

	speakCmd.Flags().StringP("out", "o", "", "Write the WAV file here instead of playing it")
	speakCmd.Flags().Bool("play", false, "Play the sentence even when writing it with --out")
}
