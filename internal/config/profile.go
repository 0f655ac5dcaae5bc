package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

const defaultConnectionName = "default"

// ConnectionProfile is one named entry of a Snowflake connections.toml file.
type ConnectionProfile struct {
	Account        string `toml:"account"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	Authenticator  string `toml:"authenticator"`
	PrivateKeyFile string `toml:"private_key_file"`
	PrivateKeyPath string `toml:"private_key_path"`
	Database       string `toml:"database"`
	Schema         string `toml:"schema"`
	Warehouse      string `toml:"warehouse"`
	Role           string `toml:"role"`
}

func LoadConnectionProfile(path, name string) (ConnectionProfile, error) {
	var raw map[string]toml.Primitive
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ConnectionProfile{}, fmt.Errorf("failed to read connections file %s: %w", path, err)
	}

	if name == "" {
		name = defaultConnectionName
		if prim, ok := raw["default_connection_name"]; ok {
			if err := meta.PrimitiveDecode(prim, &name); err != nil {
				return ConnectionProfile{}, fmt.Errorf("failed to parse default_connection_name: %w", err)
			}
		}
	}

	prim, ok := raw[name]
	if !ok {
		return ConnectionProfile{}, fmt.Errorf("connection %q not found in %s", name, path)
	}

	var profile ConnectionProfile
	if err := meta.PrimitiveDecode(prim, &profile); err != nil {
		return ConnectionProfile{}, fmt.Errorf("failed to parse connection %q: %w", name, err)
	}
	return profile, nil
}

// Apply overlays the profile on top of env-provided settings; explicit
// environment values win.
func (p ConnectionProfile) Apply(cfg SnowflakeConfig) SnowflakeConfig {
	keyPath := p.PrivateKeyFile
	if keyPath == "" {
		keyPath = p.PrivateKeyPath
	}
	cfg.Account = firstNonEmpty(cfg.Account, p.Account)
	cfg.User = firstNonEmpty(cfg.User, p.User)
	cfg.Password = firstNonEmpty(cfg.Password, p.Password)
	cfg.PrivateKeyPath = firstNonEmpty(cfg.PrivateKeyPath, keyPath)
	cfg.Database = firstNonEmpty(cfg.Database, p.Database)
	cfg.Schema = firstNonEmpty(cfg.Schema, p.Schema)
	cfg.Warehouse = firstNonEmpty(cfg.Warehouse, p.Warehouse)
	cfg.Role = firstNonEmpty(cfg.Role, p.Role)
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
