package domain

// CommandDefinition describes how to turn the output of one device command
// into a table.
type CommandDefinition struct {
	Command  string   `json:"command" yaml:"command"`
	Headers  []string `json:"headers" yaml:"headers"`
	Template string   `json:"template" yaml:"template"`
}

// JoinSpec names the two command tables a source joins and the shared column.
type JoinSpec struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
	On    string `json:"on" yaml:"on"`
}

// SourceDefinition maps a query's from clause to commands and a report policy.
type SourceDefinition struct {
	Name          string    `json:"data_source_name" yaml:"data_source_name"`
	Commands      []string  `json:"commands" yaml:"commands"`
	ProcessTables bool      `json:"process_dataframes" yaml:"process_dataframes"`
	JoinTables    bool      `json:"join_dataframes" yaml:"join_dataframes"`
	CommonColumn  string    `json:"common_column" yaml:"common_column"`
	ReportName    string    `json:"report_file_name" yaml:"report_file_name"`
	Join          *JoinSpec `json:"join,omitempty" yaml:"join,omitempty"`
}

// BaseCommand is the command whose table seeds the report when no join is
// configured.
func (s SourceDefinition) BaseCommand() string {
	if s.JoinTables && s.Join != nil {
		return s.Join.Left
	}
	if len(s.Commands) == 0 {
		return ""
	}
	return s.Commands[0]
}
