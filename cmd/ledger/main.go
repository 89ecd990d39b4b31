package main

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yourusername/ledgerbook/internal/ledger"
	"github.com/yourusername/ledgerbook/internal/pow"
	"github.com/yourusername/ledgerbook/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Append-only ledger with merkle commitments and proof-of-work sealing",
	Long: `ledger maintains a single hash-linked chain of blocks. Pending
transactions are committed into blocks via a merkle root and sealed by a
brute-force proof-of-work search.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "./ledger.db", "path to the chain database")
	rootCmd.PersistentFlags().Int("zeros", pow.DefaultZeros, "required leading zero hex characters in a sealed hash")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	viper.SetEnvPrefix("LEDGER")
	viper.AutomaticEnv()
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("zeros", rootCmd.PersistentFlags().Lookup("zeros"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.AddCommand(
		addTxCmd,
		mineCmd,
		balanceCmd,
		minmaxCmd,
		richCmd,
		verifyCmd,
		showCmd,
		exportCmd,
		importCmd,
		demoCmd,
	)
}

// openLedger opens the configured store and builds the ledger over it.
func openLedger() (*ledger.Ledger, func(), error) {
	store, err := storage.Open(viper.GetString("db"))
	if err != nil {
		return nil, nil, err
	}

	l, err := ledger.New(
		ledger.WithStore(store),
		ledger.WithTarget(pow.NewTarget(viper.GetInt("zeros"))),
	)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	return l, func() { store.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
