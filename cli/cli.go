package cli

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/soden46/hyperlux-token/config"
	"github.com/soden46/hyperlux-token/metrics"
	"github.com/soden46/hyperlux-token/network"
	"github.com/soden46/hyperlux-token/rpc"
	"github.com/soden46/hyperlux-token/storage"
	"github.com/soden46/hyperlux-token/token"
	"github.com/soden46/hyperlux-token/wallet"
)

// RunCLI dispatches the command line.
func RunCLI() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cfg := config.Load(os.Getenv("HLT_CONFIG"))

	cmd := os.Args[1]
	switch cmd {
	// ================= NODE =================
	case "init":
		handleInit(cfg)
	case "start":
		handleStart(cfg)
	case "peers":
		handlePeers(cfg)

	// ================= QUERIES =================
	case "balance":
		handleBalance(cfg)
	case "allowance":
		handleAllowance(cfg)
	case "supply":
		handleSupply(cfg)

	// ================= TOKEN OPS =================
	case "issue":
		handleIssue(cfg)
	case "destroy":
		handleDestroy(cfg)
	case "transfer":
		handleTransfer(cfg)
	case "batch-transfer":
		handleBatchTransfer(cfg)
	case "delegate":
		handleDelegate(cfg)
	case "delegated-transfer":
		handleDelegatedTransfer(cfg)

	// ================= ADMIN =================
	case "pause":
		handleSetPaused(cfg, true)
	case "unpause":
		handleSetPaused(cfg, false)
	case "blacklist":
		handleSetBlacklist(cfg, true)
	case "unblacklist":
		handleSetBlacklist(cfg, false)

	// ================= WALLET =================
	case "wallet-new":
		handleWalletNew()
	case "wallet-restore":
		handleWalletRestore()

	default:
		fmt.Println("Unknown command:", cmd)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage: hyperlux-token [command] [arguments]")
	fmt.Println("Commands:")
	fmt.Println(" - init                                       - create owner wallet + empty ledger")
	fmt.Println(" - start                                      - run the dispatch server (+ gossip with -tags p2p)")
	fmt.Println(" - peers                                      - list known peers")
	fmt.Println(" - balance <account>")
	fmt.Println(" - allowance <owner> <spender>")
	fmt.Println(" - supply")
	fmt.Println(" - issue <to> <amount> [walletfile]")
	fmt.Println(" - destroy <amount> <walletfile>")
	fmt.Println(" - transfer <to> <amount> <walletfile>")
	fmt.Println(" - batch-transfer <walletfile> <to:amount> [<to:amount> ...]")
	fmt.Println(" - delegate <spender> <amount> <walletfile>")
	fmt.Println(" - delegated-transfer <from> <to> <amount> <walletfile>")
	fmt.Println(" - pause / unpause [walletfile]")
	fmt.Println(" - blacklist <account> [walletfile] / unblacklist <account> [walletfile]")
	fmt.Println(" - wallet-new <file>")
	fmt.Println(" - wallet-restore <file> \"<mnemonic>\"")
}

// ================= HELPERS =================

func openStore(cfg config.Config) storage.Store {
	store, err := storage.Open(cfg.Store.Engine, cfg.Store.Path)
	if err != nil {
		log.Fatal("❌ failed to open store:", err)
	}
	return store
}

// withEngine loads the ledger, runs fn, and persists on success.
func withEngine(cfg config.Config, sink token.Sink, fn func(*token.Engine) error) {
	store := openStore(cfg)
	defer store.Close()

	engine, err := token.LoadState(store, sink)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	opErr := fn(engine)
	// Batch transfers may have partially committed; persist regardless
	// and report the failure afterwards.
	if err := token.SaveState(store, engine); err != nil {
		log.Fatal("❌ failed to save state:", err)
	}
	if opErr != nil {
		log.Fatal("❌ ", opErr)
	}
}

func callerFrom(walletFile string, cfg config.Config) token.Account {
	if walletFile == "" {
		walletFile = cfg.OwnerWallet
	}
	w, err := wallet.LoadWallet(walletFile)
	if err != nil {
		log.Fatal("❌ failed to load wallet:", err)
	}
	return token.Account(w.AddressEd)
}

func parseAmount(s string) uint64 {
	amount, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		log.Fatal("❌ invalid amount:", err)
	}
	return amount
}

func optionalWallet(idx int) string {
	if len(os.Args) > idx {
		return os.Args[idx]
	}
	return ""
}

// ================= NODE =================

func handleInit(cfg config.Config) {
	store := openStore(cfg)
	defer store.Close()

	if _, err := token.LoadState(store, nil); err == nil {
		log.Fatal("❌ ledger already initialized")
	}

	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		log.Fatal("❌ ", err)
	}
	w, err := wallet.FromMnemonic(mnemonic)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	if err := w.SaveToFile(cfg.OwnerWallet); err != nil {
		log.Fatal("❌ failed to save owner wallet:", err)
	}

	engine := token.NewEngine(token.Account(w.AddressEd), nil)
	if err := token.SaveState(store, engine); err != nil {
		log.Fatal("❌ failed to save state:", err)
	}

	fmt.Println("✅ Ledger initialized")
	fmt.Println("Owner address :", w.AddressEd)
	fmt.Println("Owner wallet  :", cfg.OwnerWallet)
	fmt.Println("Recovery mnemonic (store it safely):")
	fmt.Println(" ", mnemonic)
}

func handleStart(cfg config.Config) {
	network.SetPeersFile(cfg.Network.PeersFile)
	network.LoadPeers()

	store := openStore(cfg)
	defer store.Close()

	sink := token.MultiSink{metrics.Sink{}, network.Sink()}
	engine, err := token.LoadState(store, sink)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	if err := network.Start(cfg.Network.Bootstrap, nil); err != nil {
		fmt.Println("⚠️ P2P disabled:", err)
	}

	server := rpc.NewServer(engine, store, cfg.RPC.RateRPS, cfg.RPC.RateBurst)
	fmt.Println("✅ Node is running...")
	log.Fatal(server.ListenAndServe(cfg.RPC.Listen))
}

func handlePeers(cfg config.Config) {
	network.SetPeersFile(cfg.Network.PeersFile)
	network.LoadPeers()
	list := network.ListPeers()
	if len(list) == 0 {
		fmt.Println("No known peers")
		return
	}
	for _, p := range list {
		fmt.Printf(" - %s  %s  (seen %d)\n", p.ID, p.Addr, p.Seen)
	}
}

// ================= QUERIES =================

func handleBalance(cfg config.Config) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: hyperlux-token balance <account>")
		return
	}
	withEngine(cfg, nil, func(e *token.Engine) error {
		fmt.Println(e.BalanceOf(token.Account(os.Args[2])))
		return nil
	})
}

func handleAllowance(cfg config.Config) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: hyperlux-token allowance <owner> <spender>")
		return
	}
	withEngine(cfg, nil, func(e *token.Engine) error {
		fmt.Println(e.Allowance(token.Account(os.Args[2]), token.Account(os.Args[3])))
		return nil
	})
}

func handleSupply(cfg config.Config) {
	withEngine(cfg, nil, func(e *token.Engine) error {
		fmt.Println(e.TotalSupply())
		return nil
	})
}

// ================= TOKEN OPS =================

func handleIssue(cfg config.Config) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: hyperlux-token issue <to> <amount> [walletfile]")
		return
	}
	to := token.Account(os.Args[2])
	amount := parseAmount(os.Args[3])
	caller := callerFrom(optionalWallet(4), cfg)

	withEngine(cfg, network.LogSink(), func(e *token.Engine) error {
		return e.Issue(caller, to, amount)
	})
}

func handleDestroy(cfg config.Config) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: hyperlux-token destroy <amount> <walletfile>")
		return
	}
	amount := parseAmount(os.Args[2])
	caller := callerFrom(os.Args[3], cfg)

	withEngine(cfg, network.LogSink(), func(e *token.Engine) error {
		return e.Destroy(caller, amount)
	})
}

func handleTransfer(cfg config.Config) {
	if len(os.Args) < 5 {
		fmt.Println("Usage: hyperlux-token transfer <to> <amount> <walletfile>")
		return
	}
	to := token.Account(os.Args[2])
	amount := parseAmount(os.Args[3])
	caller := callerFrom(os.Args[4], cfg)

	withEngine(cfg, network.LogSink(), func(e *token.Engine) error {
		return e.Transfer(caller, to, amount)
	})
}

func handleBatchTransfer(cfg config.Config) {
	if len(os.Args) < 4 {
		fmt.Println("Usage: hyperlux-token batch-transfer <walletfile> <to:amount> [<to:amount> ...]")
		return
	}
	caller := callerFrom(os.Args[2], cfg)

	var recipients []token.Account
	var amounts []uint64
	for _, arg := range os.Args[3:] {
		to, amt, ok := strings.Cut(arg, ":")
		if !ok {
			log.Fatal("❌ expected <to:amount>, got: ", arg)
		}
		recipients = append(recipients, token.Account(to))
		amounts = append(amounts, parseAmount(amt))
	}

	withEngine(cfg, network.LogSink(), func(e *token.Engine) error {
		return e.BatchTransfer(caller, recipients, amounts)
	})
}

func handleDelegate(cfg config.Config) {
	if len(os.Args) < 5 {
		fmt.Println("Usage: hyperlux-token delegate <spender> <amount> <walletfile>")
		return
	}
	spender := token.Account(os.Args[2])
	amount := parseAmount(os.Args[3])
	caller := callerFrom(os.Args[4], cfg)

	withEngine(cfg, network.LogSink(), func(e *token.Engine) error {
		return e.Delegate(caller, spender, amount)
	})
}

func handleDelegatedTransfer(cfg config.Config) {
	if len(os.Args) < 6 {
		fmt.Println("Usage: hyperlux-token delegated-transfer <from> <to> <amount> <walletfile>")
		return
	}
	from := token.Account(os.Args[2])
	to := token.Account(os.Args[3])
	amount := parseAmount(os.Args[4])
	caller := callerFrom(os.Args[5], cfg)

	withEngine(cfg, network.LogSink(), func(e *token.Engine) error {
		return e.DelegatedTransfer(caller, from, to, amount)
	})
}

// ================= ADMIN =================

func handleSetPaused(cfg config.Config, state bool) {
	caller := callerFrom(optionalWallet(2), cfg)
	withEngine(cfg, nil, func(e *token.Engine) error {
		return e.SetPaused(caller, state)
	})
	if state {
		fmt.Println("✅ Transfers paused")
	} else {
		fmt.Println("✅ Transfers resumed")
	}
}

func handleSetBlacklist(cfg config.Config, state bool) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: hyperlux-token blacklist <account> [walletfile]")
		return
	}
	acc := token.Account(os.Args[2])
	caller := callerFrom(optionalWallet(3), cfg)
	withEngine(cfg, nil, func(e *token.Engine) error {
		return e.SetBlacklist(caller, acc, state)
	})
	if state {
		fmt.Printf("✅ %s blacklisted\n", acc)
	} else {
		fmt.Printf("✅ %s removed from blacklist\n", acc)
	}
}

// ================= WALLET =================

func handleWalletNew() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: hyperlux-token wallet-new <file>")
		return
	}
	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		log.Fatal("❌ ", err)
	}
	w, err := wallet.FromMnemonic(mnemonic)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	if err := w.SaveToFile(os.Args[2]); err != nil {
		log.Fatal("❌ failed to save wallet:", err)
	}
	fmt.Println("✅ Wallet created:", os.Args[2])
	fmt.Println("Address :", w.AddressEd)
	fmt.Println("Recovery mnemonic (store it safely):")
	fmt.Println(" ", mnemonic)
}

func handleWalletRestore() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: hyperlux-token wallet-restore <file> \"<mnemonic>\"")
		return
	}
	w, err := wallet.FromMnemonic(strings.Join(os.Args[3:], " "))
	if err != nil {
		log.Fatal("❌ ", err)
	}
	if err := w.SaveToFile(os.Args[2]); err != nil {
		log.Fatal("❌ failed to save wallet:", err)
	}
	fmt.Println("✅ Wallet restored:", os.Args[2])
	fmt.Println("Address :", w.AddressEd)
}
