// Package dto defines the data transfer objects crossing the plugin
// module boundary.
package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

// DoctorResult is one plugin's health check. Checks run in order
// (manifest, binary, checksum, lifecycle) and stop at the first
// failure, captured in Error.
type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type CommandInfo struct {
	ID              string
	Title           string
	Description     string
	Kind            string
	InputSchemaJSON string
	TimeoutMS       int
}

// ExecuteInput names a plugin command and carries the host context
// handed to the process: the analysis under discussion, the signed-in
// account, and the directories the plugin may read or write.
type ExecuteInput struct {
	PluginName   string
	CommandID    string
	InputJSON    string
	AnalysisID   string
	AccountEmail string
	ConfigDir    string
	Cwd          string
	Env          map[string]string
}

type ExecuteOutput struct {
	PluginName string
	CommandID  string
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
