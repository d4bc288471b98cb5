// config/resolve.go
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Settings such as the revocation window are layered: a department override
// beats the global value, which beats the hard default. Resolution walks an
// explicit precedence list of keys and returns the first one that is set,
// instead of repeating ad hoc fallback chains at every call site.

// ResolveInt returns the first defined integer among keys, or def.
func ResolveInt(def int, keys ...string) int {
	for _, k := range keys {
		if viper.IsSet(k) {
			return viper.GetInt(k)
		}
	}
	return def
}

// ResolveString returns the first defined string among keys, or def.
func ResolveString(def string, keys ...string) string {
	for _, k := range keys {
		if viper.IsSet(k) {
			return viper.GetString(k)
		}
	}
	return def
}

// ResolveDuration returns the first defined duration among keys, or def.
func ResolveDuration(def time.Duration, keys ...string) time.Duration {
	for _, k := range keys {
		if viper.IsSet(k) {
			return viper.GetDuration(k)
		}
	}
	return def
}

// RevocationWindow resolves the revoke window for a department:
// department override -> global setting -> 3h default.
func RevocationWindow(departmentID string) time.Duration {
	keys := []string{}
	if departmentID != "" {
		keys = append(keys, "workflow.revocation.departments."+departmentID+".windowHours")
	}
	keys = append(keys, "workflow.revocation.windowHours")
	hours := 3
	for _, k := range keys {
		if viper.IsSet(k) {
			hours = viper.GetInt(k)
			break
		}
	}
	return time.Duration(hours) * time.Hour
}
