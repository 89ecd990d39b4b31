package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yourusername/ledgerbook/internal/ledger"
	"github.com/yourusername/ledgerbook/internal/merkle"
	"github.com/yourusername/ledgerbook/internal/storage"
	"github.com/yourusername/ledgerbook/pkg/types"
)

var addTxCmd = &cobra.Command{
	Use:   "add-tx <sender> <receiver> <amount>",
	Short: "Append a transfer to the pending buffer",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[2], err)
		}

		l, closeStore, err := openLedger()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := l.AddTransaction(args[0], args[1], amount); err != nil {
			return err
		}

		pterm.Success.Printfln("pending: %s -> %s (%d), buffer size %d", args[0], args[1], amount, len(l.Pending()))
		return nil
	},
}

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Seal the pending buffer into a new block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, closeStore, err := openLedger()
		if err != nil {
			return err
		}
		defer closeStore()

		spinner, _ := pterm.DefaultSpinner.Start("sealing block...")
		b, err := l.AddBlock()
		if err != nil {
			spinner.Fail(err.Error())
			return err
		}

		spinner.Success(fmt.Sprintf("block %d sealed: nonce %d, hash %s", l.Height()-1, b.Header.Nonce, b.Header.Hash))
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <person>",
	Short: "Net balance of a person over the whole chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, closeStore, err := openLedger()
		if err != nil {
			return err
		}
		defer closeStore()

		fmt.Printf("%s: %d\n", args[0], l.GetBalance(args[0]))
		return nil
	},
}

var minmaxCmd = &cobra.Command{
	Use:   "minmax <person>",
	Short: "Minimum and maximum running balance of a person",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, closeStore, err := openLedger()
		if err != nil {
			return err
		}
		defer closeStore()

		lo, hi := l.GetMinMaxBalance(args[0])
		fmt.Printf("%s: min %d, max %d\n", args[0], lo, hi)
		return nil
	},
}

var richCmd = &cobra.Command{
	Use:   "rich",
	Short: "Participants with a strictly positive net balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, closeStore, err := openLedger()
		if err != nil {
			return err
		}
		defer closeStore()

		users := l.GetPositiveBalanceUsers()
		if len(users) == 0 {
			pterm.Info.Println("no positive balances")
			return nil
		}
		for _, user := range users {
			fmt.Printf("%s: %d\n", user, l.GetBalance(user))
		}
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify chain linkage, block hashes and merkle commitments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, closeStore, err := openLedger()
		if err != nil {
			return err
		}
		defer closeStore()

		reportVerdict(l)
		return nil
	},
}

var showTree bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the chain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, closeStore, err := openLedger()
		if err != nil {
			return err
		}
		defer closeStore()

		for i, b := range l.Blocks() {
			pterm.DefaultSection.Printfln("Block %d", i)
			pterm.Printfln("  hash:        %s", b.Header.Hash)
			pterm.Printfln("  previous:    %s", b.Header.PrevHash)
			pterm.Printfln("  merkle root: %s", b.Header.MerkleRoot)
			pterm.Printfln("  timestamp:   %s", b.Header.CanonicalTimestamp())
			pterm.Printfln("  nonce:       %d", b.Header.Nonce)
			for j, tx := range b.Transactions {
				pterm.Printfln("  [%d] %s -> %s: %d", j, tx.Sender, tx.Receiver, tx.Amount)
			}
			if showTree {
				printMerkleLevels(b)
			}
		}

		pterm.Printfln("\npending transactions: %d", len(l.Pending()))
		return nil
	},
}

func printMerkleLevels(b *types.Block) {
	levels := merkle.Levels(types.CanonicalTransactions(b.Transactions))
	for depth, level := range levels {
		pterm.Printfln("  level %d: %d node(s)", depth, len(level))
		for _, node := range level {
			pterm.Printfln("    %s", node)
		}
	}
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the chain to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, closeStore, err := openLedger()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := storage.ExportFile(args[0], l.Blocks()); err != nil {
			return err
		}
		pterm.Success.Printfln("exported %d blocks to %s", l.Height(), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored chain with one read from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blocks, err := storage.ImportFile(args[0])
		if err != nil {
			return err
		}

		l, err := ledger.FromBlocks(blocks)
		if err != nil {
			return err
		}
		if !l.VerifyChain() || !l.VerifyAllTransactions() {
			return fmt.Errorf("imported chain failed verification")
		}

		store, err := storage.Open(viper.GetString("db"))
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Reset(); err != nil {
			return err
		}
		for _, b := range blocks {
			if err := store.PutBlock(b); err != nil {
				return err
			}
		}
		if err := store.PutChainTip(blocks[len(blocks)-1].Header.Hash); err != nil {
			return err
		}
		if err := store.PutChainHeight(len(blocks)); err != nil {
			return err
		}

		pterm.Success.Printfln("imported %d blocks from %s", len(blocks), args[0])
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted two-block walkthrough in memory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := ledger.New()
		if err != nil {
			return err
		}

		l.AddTransaction("Alice", "Bob", 50)
		l.AddTransaction("Bob", "Kate", 20)
		if _, err := l.AddBlock(); err != nil {
			return err
		}

		printBalances(l, "Alice", "Bob", "Kate", "Mike", "Jane")
		lo, hi := l.GetMinMaxBalance("Bob")
		pterm.Printfln("Bob min/max: %d / %d", lo, hi)
		pterm.Printfln("positive balances: %v", l.GetPositiveBalanceUsers())
		reportVerdict(l)

		l.AddTransaction("Alice", "Jane", 250)
		l.AddTransaction("Jane", "Bob", 60)
		l.AddTransaction("Jane", "Mike", 80)
		l.AddTransaction("Mike", "Jane", 20)
		l.AddTransaction("Jane", "Bob", 40)
		if _, err := l.AddBlock(); err != nil {
			return err
		}

		printBalances(l, "Alice", "Bob", "Kate", "Mike", "Jane")
		reportVerdict(l)
		return nil
	},
}

func printBalances(l *ledger.Ledger, people ...string) {
	for _, person := range people {
		pterm.Printfln("balance of %-6s %d", person+":", l.GetBalance(person))
	}
}

func reportVerdict(l *ledger.Ledger) {
	if l.VerifyChain() {
		pterm.Success.Println("chain linkage and block hashes verified")
	} else {
		pterm.Error.Println("chain verification FAILED")
	}
	if l.VerifyAllTransactions() {
		pterm.Success.Println("merkle commitments verified")
	} else {
		pterm.Error.Println("merkle commitment verification FAILED")
	}
}

func init() {
	showCmd.Flags().BoolVar(&showTree, "tree", false, "print merkle reduction levels per block")
}
