// Package chains holds the static blockchain network and wallet connector
// tables. Built once at startup; nothing mutates them afterwards.
package chains

import "fmt"

type NetworkID string

const (
	BaseSepolia NetworkID = "base-sepolia"
	BaseMainnet NetworkID = "base-mainnet"
)

type Network struct {
	ID           NetworkID `json:"id"`
	Name         string    `json:"name"`
	ChainID      int64     `json:"chainId"`
	RPCURL       string    `json:"rpcUrl"`
	ExplorerURL  string    `json:"explorerUrl"`
	ExplorerName string    `json:"explorerName"`
	IsTestnet    bool      `json:"isTestnet"`
}

// Config is the immutable network + connector table.
type Config struct {
	networks map[NetworkID]Network
	// Connector preferences for the wallet provider.
	AppName          string
	WalletPreference string
	DefaultNetwork   NetworkID
}

// New builds the network table. sepoliaRPC overrides the public testnet
// RPC endpoint when set.
func New(sepoliaRPC string) *Config {
	if sepoliaRPC == "" {
		sepoliaRPC = "https://sepolia.base.org"
	}

	return &Config{
		networks: map[NetworkID]Network{
			BaseSepolia: {
				ID:           BaseSepolia,
				Name:         "Base Sepolia",
				ChainID:      84532,
				RPCURL:       sepoliaRPC,
				ExplorerURL:  "https://sepolia.basescan.org",
				ExplorerName: "BaseScan (Sepolia)",
				IsTestnet:    true,
			},
			BaseMainnet: {
				ID:           BaseMainnet,
				Name:         "Base Mainnet",
				ChainID:      8453,
				RPCURL:       "https://mainnet.base.org",
				ExplorerURL:  "https://basescan.org",
				ExplorerName: "BaseScan",
				IsTestnet:    false,
			},
		},
		AppName:          "Zero to Crypto Dev",
		WalletPreference: "smartWalletOnly",
		DefaultNetwork:   BaseSepolia,
	}
}

func (c *Config) Network(id NetworkID) (Network, bool) {
	n, ok := c.networks[id]
	return n, ok
}

func (c *Config) Networks() []Network {
	return []Network{c.networks[BaseSepolia], c.networks[BaseMainnet]}
}

func (c *Config) TxExplorerURL(id NetworkID, txHash string) string {
	n := c.networks[id]
	return fmt.Sprintf("%s/tx/%s", n.ExplorerURL, txHash)
}

func (c *Config) AddressExplorerURL(id NetworkID, address string) string {
	n := c.networks[id]
	return fmt.Sprintf("%s/address/%s", n.ExplorerURL, address)
}
