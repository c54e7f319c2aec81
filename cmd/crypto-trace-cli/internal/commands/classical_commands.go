package commands

import (
	"github.com/MGTheTrain/crypto-trace/internal/app"
	"github.com/MGTheTrain/crypto-trace/internal/domain/cryptoalg"

	"github.com/spf13/cobra"
)

// reversible picks the encrypt or decrypt routine according to --decrypt
func reversible[T any](cmd *cobra.Command, encrypt, decrypt func(text, key string) (T, error), text, key string) (any, error) {
	if decryptMode, _ := cmd.Flags().GetBool("decrypt"); decryptMode {
		return decrypt(text, key)
	}
	return encrypt(text, key)
}

// textAndKey reads --text and --key. An empty key is allowed when optionalKey is set.
func (h *CommandHandler) textAndKey(cmd *cobra.Command, optionalKey bool) (string, string, error) {
	text, err := requiredString(cmd, "text")
	if err != nil {
		return "", "", err
	}
	key := stringFlag(cmd, "key")
	if key == "" && !optionalKey {
		return "", "", cryptoalg.NewValidationError(cryptoalg.MsgMissingKey)
	}
	if err := h.checkText(text, key); err != nil {
		return "", "", err
	}
	return text, key, nil
}

// CaesarCmd shifts every letter by --shift
func (h *CommandHandler) CaesarCmd(cmd *cobra.Command, _ []string) error {
	return h.compute(cmd, func(engine *app.Engine) (any, error) {
		text, err := requiredString(cmd, "text")
		if err != nil {
			return nil, err
		}
		if err := h.checkText(text); err != nil {
			return nil, err
		}
		shift, err := cmd.Flags().GetInt("shift")
		if err != nil {
			return nil, err
		}

		if decryptMode, _ := cmd.Flags().GetBool("decrypt"); decryptMode {
			return engine.Classical.CaesarDecrypt(text, shift)
		}
		return engine.Classical.CaesarEncrypt(text, shift)
	})
}

// keyedCmd builds the RunE of a cipher taking --text and --key
func (h *CommandHandler) keyedCmd(optionalKey bool, run func(engine *app.Engine, cmd *cobra.Command, text, key string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return h.compute(cmd, func(engine *app.Engine) (any, error) {
			text, key, err := h.textAndKey(cmd, optionalKey)
			if err != nil {
				return nil, err
			}
			return run(engine, cmd, text, key)
		})
	}
}

// RailFenceCmd writes --text along --rails zigzag rails
func (h *CommandHandler) RailFenceCmd(cmd *cobra.Command, _ []string) error {
	return h.compute(cmd, func(engine *app.Engine) (any, error) {
		text, err := requiredString(cmd, "text")
		if err != nil {
			return nil, err
		}
		if err := h.checkText(text); err != nil {
			return nil, err
		}
		rails, err := cmd.Flags().GetInt("rails")
		if err != nil {
			return nil, err
		}
		return engine.Classical.RailFenceEncrypt(text, rails)
	})
}

func registerClassicalCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	textKeyFlags := func(cmd *cobra.Command, keyUsage string, decrypt bool) *cobra.Command {
		cmd.Flags().String("text", "", "Input text")
		cmd.Flags().String("key", "", keyUsage)
		if decrypt {
			cmd.Flags().Bool("decrypt", false, "Decrypt instead of encrypt")
		}
		return cmd
	}

	caesarCmd := &cobra.Command{
		Use:   "caesar",
		Short: "Caesar shift cipher",
		RunE:  handler.CaesarCmd,
	}
	caesarCmd.Flags().String("text", "", "Input text")
	caesarCmd.Flags().Int("shift", handler.settings.DefaultCaesarShift, "Alphabet shift")
	caesarCmd.Flags().Bool("decrypt", false, "Decrypt instead of encrypt")
	rootCmd.AddCommand(caesarCmd)

	rootCmd.AddCommand(textKeyFlags(&cobra.Command{
		Use:   "monoalphabetic",
		Short: "Keyword substitution cipher",
		RunE: handler.keyedCmd(false, func(engine *app.Engine, _ *cobra.Command, text, key string) (any, error) {
			return engine.Classical.MonoalphabeticEncrypt(text, key)
		}),
	}, "Keyword that starts the cipher alphabet", false))

	rootCmd.AddCommand(textKeyFlags(&cobra.Command{
		Use:   "vigenere",
		Short: "Vigenere polyalphabetic cipher",
		RunE: handler.keyedCmd(false, func(engine *app.Engine, cmd *cobra.Command, text, key string) (any, error) {
			return reversible(cmd, engine.Classical.VigenereEncrypt, engine.Classical.VigenereDecrypt, text, key)
		}),
	}, "Repeating key", true))

	rootCmd.AddCommand(textKeyFlags(&cobra.Command{
		Use:   "vernam",
		Short: "Vernam cipher; encryption generates a key when --key is omitted",
		RunE: handler.keyedCmd(true, func(engine *app.Engine, cmd *cobra.Command, text, key string) (any, error) {
			return reversible(cmd, engine.Classical.VernamEncrypt, engine.Classical.VernamDecrypt, text, key)
		}),
	}, "Key as long as the text", true))

	rootCmd.AddCommand(textKeyFlags(&cobra.Command{
		Use:   "otp",
		Short: "One-time pad over bytes; with --decrypt, --text and --key are hex",
		RunE: handler.keyedCmd(true, func(engine *app.Engine, cmd *cobra.Command, text, key string) (any, error) {
			return reversible(cmd, engine.Classical.OTPEncrypt, engine.Classical.OTPDecrypt, text, key)
		}),
	}, "Pad; generated when omitted on encryption", true))

	rootCmd.AddCommand(textKeyFlags(&cobra.Command{
		Use:   "playfair",
		Short: "Playfair digraph cipher",
		RunE: handler.keyedCmd(false, func(engine *app.Engine, cmd *cobra.Command, text, key string) (any, error) {
			return reversible(cmd, engine.Classical.PlayfairEncrypt, engine.Classical.PlayfairDecrypt, text, key)
		}),
	}, "Keyword of the 5x5 square", true))

	rootCmd.AddCommand(textKeyFlags(&cobra.Command{
		Use:   "hill",
		Short: "Hill cipher with a 3x3 key matrix",
		RunE: handler.keyedCmd(false, func(engine *app.Engine, cmd *cobra.Command, text, key string) (any, error) {
			return reversible(cmd, engine.Classical.HillEncrypt, engine.Classical.HillDecrypt, text, key)
		}),
	}, "Nine letters read row by row", true))

	railFenceCmd := &cobra.Command{
		Use:   "rail-fence",
		Short: "Rail fence transposition",
		RunE:  handler.RailFenceCmd,
	}
	railFenceCmd.Flags().String("text", "", "Input text")
	railFenceCmd.Flags().Int("rails", handler.settings.DefaultRailCount, "Number of rails")
	rootCmd.AddCommand(railFenceCmd)

	rootCmd.AddCommand(textKeyFlags(&cobra.Command{
		Use:   "row-transposition",
		Short: "Columnar transposition ordered by a keyword",
		RunE: handler.keyedCmd(false, func(engine *app.Engine, _ *cobra.Command, text, key string) (any, error) {
			return engine.Classical.RowTranspositionEncrypt(text, key)
		}),
	}, "Keyword giving the column order", false))
}
