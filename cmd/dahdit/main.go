package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/dahdit/cmd/callsign"
	"github.com/gigurra/dahdit/cmd/morse"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	groupMorse    = "morse"
	groupPractice = "practice"
)

// withGroup sets the GroupID on a command and returns it
func withGroup(cmd *cobra.Command, group string) *cobra.Command {
	cmd.GroupID = group
	return cmd
}

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "dahdit",
		Short:   "Morse code translator, player and call sign generator",
		Version: appVersion(),
		Groups: []*cobra.Group{
			{ID: groupMorse, Title: "Morse:"},
			{ID: groupPractice, Title: "Practice:"},
		},
		SubCmds: []*cobra.Command{
			withGroup(morse.Cmd(), groupMorse),
			withGroup(callsign.Cmd(), groupPractice),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuildInfo := debug.ReadBuildInfo()
	if !hasBuildInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
