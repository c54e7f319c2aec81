package commands

import (
	"github.com/MGTheTrain/crypto-trace/internal/app"

	"github.com/spf13/cobra"
)

func registerBlockCipherCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	aesCmd := &cobra.Command{
		Use:   "aes",
		Short: "AES-128 ECB encryption with the full round trace",
		RunE: handler.keyedCmd(false, func(engine *app.Engine, _ *cobra.Command, text, key string) (any, error) {
			return engine.BlockCipher.AESEncrypt(text, key)
		}),
	}
	aesCmd.Flags().String("text", "", "Plaintext, PKCS#7 padded to 16-byte blocks")
	aesCmd.Flags().String("key", "", "Key text, zero padded or truncated to 16 bytes")
	rootCmd.AddCommand(aesCmd)

	desCmd := &cobra.Command{
		Use:   "des",
		Short: "Single-block DES encryption with all 16 Feistel rounds",
		RunE: handler.keyedCmd(false, func(engine *app.Engine, _ *cobra.Command, text, key string) (any, error) {
			return engine.BlockCipher.DESEncrypt(text, key)
		}),
	}
	desCmd.Flags().String("text", "", "64-bit plaintext as hex")
	desCmd.Flags().String("key", "", "64-bit key as hex")
	rootCmd.AddCommand(desCmd)
}
