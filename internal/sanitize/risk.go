package sanitize

import (
	"regexp"
	"strings"
)

// RiskLevel classifies how dangerous a command is to run unreviewed.
type RiskLevel string

const (
	RiskSafe        RiskLevel = "safe"
	RiskDestructive RiskLevel = "destructive"
)

type riskPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

var destructivePatterns = []riskPattern{
	{Name: "rm -rf", Pattern: regexp.MustCompile(`\brm\s+(-[a-zA-Z]*r[a-zA-Z]*f|--recursive\s+--force|-[a-zA-Z]*f[a-zA-Z]*r)\b`)},
	{Name: "rm -r", Pattern: regexp.MustCompile(`\brm\s+-[a-zA-Z]*r\b`)},
	{Name: "rm -f", Pattern: regexp.MustCompile(`\brm\s+-[a-zA-Z]*f\b`)},
	{Name: "rmdir", Pattern: regexp.MustCompile(`\brmdir\b`)},
	{Name: "DROP TABLE", Pattern: regexp.MustCompile(`(?i)\bDROP\s+(TABLE|DATABASE)\b`)},
	{Name: "TRUNCATE", Pattern: regexp.MustCompile(`(?i)\bTRUNCATE\b`)},
	{Name: "DELETE FROM", Pattern: regexp.MustCompile(`(?i)\bDELETE\s+FROM\b`)},
	{Name: "git force push", Pattern: regexp.MustCompile(`\bgit\s+push\s+.*(-f\b|--force)`)},
	{Name: "git reset --hard", Pattern: regexp.MustCompile(`\bgit\s+reset\s+--hard\b`)},
	{Name: "git clean", Pattern: regexp.MustCompile(`\bgit\s+clean\s+-[a-zA-Z]*[fd]`)},
	{Name: "chmod 777", Pattern: regexp.MustCompile(`\bchmod\s+777\b`)},
	{Name: "chmod/chown -R", Pattern: regexp.MustCompile(`\bch(mod|own)\s+-[a-zA-Z]*R\b`)},
	{Name: "dd to device", Pattern: regexp.MustCompile(`\bdd\s+.*of=/dev/`)},
	{Name: "write to device", Pattern: regexp.MustCompile(`>\s*/dev/(sd|hd|nvme|vd|xvd|disk)`)},
	{Name: "mkfs", Pattern: regexp.MustCompile(`\bmkfs(\.\w+)?\b`)},
	{Name: "shutdown", Pattern: regexp.MustCompile(`\b(shutdown|reboot|halt|poweroff)\b`)},
	{Name: "kill -9", Pattern: regexp.MustCompile(`\b(kill\s+-9|killall|pkill)\b`)},
	{Name: "docker prune", Pattern: regexp.MustCompile(`\bdocker\s+(system|volume|image)\s+prune\b`)},
	{Name: "kubectl delete", Pattern: regexp.MustCompile(`\bkubectl\s+delete\b`)},
}

// MatchDestructive reports the name of the first destructive pattern found
// in command.
func MatchDestructive(command string) (string, bool) {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return "", false
	}
	for _, p := range destructivePatterns {
		if p.Pattern.MatchString(cmd) {
			return p.Name, true
		}
	}
	return "", false
}

// IsDestructive reports whether command matches any destructive pattern.
func IsDestructive(command string) bool {
	_, ok := MatchDestructive(command)
	return ok
}

// GetRiskLevel returns the risk level for a command.
func GetRiskLevel(command string) RiskLevel {
	if IsDestructive(command) {
		return RiskDestructive
	}
	return RiskSafe
}
