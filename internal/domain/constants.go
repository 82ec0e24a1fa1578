package domain

import "time"

// UnspecifiedAccount disables every DNS mutation for a resolve group.
const UnspecifiedAccount = "unspecified"

// DisabledChannels is the channel list value that turns notifications off.
const DisabledChannels = "none"

const (
	DownloadMaxAttempts   = 5
	DownloadRetryDelay    = 2 * time.Second
	DownloadTimeout       = 3 * time.Second
	CredentialMaxAttempts = 10
	CredentialRetryDelay  = 2 * time.Second
	CredentialTimeout     = 5 * time.Second
	PluginSettleDelay     = 10 * time.Second
	ChannelTimeout        = 20 * time.Second
)

const (
	DefaultProberBinary = "./CloudflareST-Rust"
	DefaultResultFile   = "result.csv"
	ProberInputFlag     = "-f"
	ProberOutputFlag    = "-o"
	ProberCountFlag     = "-dn"
	ProberSampleFlag    = "-p"
)
