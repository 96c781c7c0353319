package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration parsing for the optional config file.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Coordination struct {
		Backend        string   `json:"backend"`
		Endpoints      []string `json:"endpoints"`
		BaseURL        string   `json:"base_url"`
		DialTimeout    Duration `json:"dial_timeout"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"coordination,omitempty"`

	Resolver struct {
		DirectoryName         string `json:"directory_name"`
		Environment           string `json:"environment"`
		GenerateMissingKeys   bool   `json:"generate_missing_keys"`
		MirrorToEnvironment   bool   `json:"mirror_to_environment"`
		WatchKeys             bool   `json:"watch_keys"`
		AllowOutOfScopeWrites bool   `json:"allow_out_of_scope_writes"`
		UseEnvironmentSubdirs bool   `json:"use_environment_subdirectories"`
	} `json:"resolver,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	ManifestPath string `json:"manifest"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Coordination: Coordination{
			Backend:        jsonCfg.Coordination.Backend,
			Endpoints:      jsonCfg.Coordination.Endpoints,
			BaseURL:        jsonCfg.Coordination.BaseURL,
			DialTimeout:    time.Duration(jsonCfg.Coordination.DialTimeout),
			RequestTimeout: time.Duration(jsonCfg.Coordination.RequestTimeout),
		},
		Resolver: Resolver{
			DirectoryName:         jsonCfg.Resolver.DirectoryName,
			Environment:           jsonCfg.Resolver.Environment,
			GenerateMissingKeys:   jsonCfg.Resolver.GenerateMissingKeys,
			MirrorToEnvironment:   jsonCfg.Resolver.MirrorToEnvironment,
			WatchKeys:             jsonCfg.Resolver.WatchKeys,
			AllowOutOfScopeWrites: jsonCfg.Resolver.AllowOutOfScopeWrites,
			UseEnvironmentSubdirs: jsonCfg.Resolver.UseEnvironmentSubdirs,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		ManifestPath: jsonCfg.ManifestPath,
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
