// sign выводит ключи и заголовки подписи для ручных запросов к API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mutual/internal/auth"
)

var rootCmd = &cobra.Command{
	Use:               "sign",
	Short:             "Signing helper for the escrow API",
	DisableAutoGenTag: true,
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new mnemonic and print its public key",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m, err := auth.NewMnemonic()
		checkErr(err)
		key, err := auth.KeyFromMnemonic(m, viper.GetString("passphrase"))
		checkErr(err)
		fmt.Printf("mnemonic: %s\npubkey:   %s\n", m, key.PublicKey())
	},
}

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Print the public key derived from the mnemonic",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(mustKey().PublicKey())
	},
}

var requestCmd = &cobra.Command{
	Use:   "request [method] [path]",
	Short: "Print signature headers for a request",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		body := []byte(viper.GetString("body"))
		headers, err := auth.SignRequest(mustKey(), args[0], args[1], time.Now(), body)
		checkErr(err)
		for _, h := range []string{auth.HeaderSigner, auth.HeaderTimestamp, auth.HeaderSignature} {
			fmt.Printf("%s: %s\n", h, headers[h])
		}
	},
}

var attestCmd = &cobra.Command{
	Use:   "attest [dealId] [releasedAmount]",
	Short: "Print marketcap attestation headers for a claim",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var released uint64
		_, err := fmt.Sscan(args[1], &released)
		checkErr(err)
		key := mustKey()
		sig, err := auth.Sign(key, auth.AttestationMessage(args[0], released))
		checkErr(err)
		fmt.Printf("%s: %s\n%s: %s\n", auth.HeaderAttestor, key.PublicKey(), auth.HeaderAttestation, sig)
	},
}

func mustKey() solana.PrivateKey {
	m := viper.GetString("mnemonic")
	if m == "" {
		checkErr(fmt.Errorf("mnemonic is required (--mnemonic or MUTUAL_MNEMONIC)"))
	}
	key, err := auth.KeyFromMnemonic(m, viper.GetString("passphrase"))
	checkErr(err)
	return key
}

func checkErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		viper.SetEnvPrefix("MUTUAL")
		viper.AutomaticEnv()
	})
	rootCmd.PersistentFlags().String("mnemonic", "", "BIP-39 mnemonic of the signing key")
	rootCmd.PersistentFlags().String("passphrase", "", "optional BIP-39 passphrase")
	requestCmd.Flags().String("body", "", "raw request body")
	checkErr(viper.BindPFlag("mnemonic", rootCmd.PersistentFlags().Lookup("mnemonic")))
	checkErr(viper.BindPFlag("passphrase", rootCmd.PersistentFlags().Lookup("passphrase")))
	checkErr(viper.BindPFlag("body", requestCmd.Flags().Lookup("body")))
	rootCmd.AddCommand(keygenCmd, pubkeyCmd, requestCmd, attestCmd)
}

func main() {
	checkErr(rootCmd.Execute())
}
