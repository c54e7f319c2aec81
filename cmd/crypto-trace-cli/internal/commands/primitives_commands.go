package commands

import (
	"encoding/json"

	"github.com/MGTheTrain/crypto-trace/internal/app"
	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"

	"github.com/spf13/cobra"
)

func registerPrimitivesCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	hmacCmd := &cobra.Command{
		Use:   "hmac",
		Short: "HMAC with the inner and outer hash traced",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			key, err := requiredString(cmd, "key")
			if err != nil {
				return nil, err
			}
			message := stringFlag(cmd, "message")
			if err := handler.checkText(key, message); err != nil {
				return nil, err
			}
			return engine.HMAC.Compute(key, message, stringFlag(cmd, "algorithm"))
		}),
	}
	addStringFlags(hmacCmd, map[string]string{"key": "Secret key", "message": "Message"})
	hmacCmd.Flags().String("algorithm", "sha256", "md5, sha1, sha256, sha512, sha3-256 or blake2b-256")
	rootCmd.AddCommand(hmacCmd)

	lcgCmd := &cobra.Command{
		Use:   "lcg",
		Short: "Linear congruential generator X(n+1) = (a*X(n) + c) mod m",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			values, err := requiredBigs(cmd, "m", "a", "c", "seed")
			if err != nil {
				return nil, err
			}
			n, err := cmd.Flags().GetInt("n")
			if err != nil {
				return nil, err
			}
			return engine.PRNG.LCG(values[0], values[1], values[2], values[3], n)
		}),
	}
	addStringFlags(lcgCmd, map[string]string{"m": "Modulus", "a": "Multiplier", "c": "Increment", "seed": "Start value X0"})
	lcgCmd.Flags().Int("n", handler.settings.PrngDefaultSamples, "Number of values to generate")
	rootCmd.AddCommand(lcgCmd)

	entropyCmd := newGroupCommand("entropy", "Entropy sources")

	systemCmd := &cobra.Command{
		Use:   "system",
		Short: "Read bytes from the operating system CSPRNG",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			numBytes, err := cmd.Flags().GetInt("bytes")
			if err != nil {
				return nil, err
			}
			return engine.Entropy.SystemEntropy(numBytes)
		}),
	}
	systemCmd.Flags().Int("bytes", handler.settings.EntropyDefaultBytes, "Number of bytes")

	mixCmd := &cobra.Command{
		Use:   "mix",
		Short: `Hash user events given as JSON, e.g. [{"x":1,"y":2,"t":3}]`,
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			raw, err := requiredString(cmd, "events")
			if err != nil {
				return nil, err
			}
			var events []cryptoalg.EntropyEvent
			if err := json.Unmarshal([]byte(raw), &events); err != nil {
				return nil, cryptoalg.NewValidationError("events must be a JSON array of {x, y, t}: %v", err)
			}
			return engine.Entropy.MixUserEntropy(events)
		}),
	}
	addStringFlags(mixCmd, map[string]string{"events": "JSON array of pointer events"})

	entropyCmd.AddCommand(systemCmd, mixCmd)
	rootCmd.AddCommand(entropyCmd)

	ipsecCmd := &cobra.Command{
		Use:   "ipsec",
		Short: "Packet layout of AH or ESP in transport or tunnel mode",
		RunE: handler.computeCmd(func(engine *app.Engine, cmd *cobra.Command) (any, error) {
			return engine.IPsec.Layout(stringFlag(cmd, "protocol"), stringFlag(cmd, "mode"))
		}),
	}
	ipsecCmd.Flags().String("protocol", "esp", "ah or esp")
	ipsecCmd.Flags().String("mode", "transport", "transport or tunnel")
	rootCmd.AddCommand(ipsecCmd)
}
