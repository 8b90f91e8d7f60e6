// converter.go - SDL GameControllerDB to engine config conversion

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	zeni "github.com/intuitionamiga/zeniengine"
	"gopkg.in/yaml.v3"
)

// Mapping is one parsed GameControllerDB line.
type Mapping struct {
	GUID     string
	Name     string
	Platform string // empty when the line names none
	Line     string // normalized source line
}

// Stats counts what a conversion kept and why it dropped the rest.
type Stats struct {
	Lines      int
	Kept       int
	OtherOS    int
	Duplicates int
	Malformed  int
}

// Converter filters GameControllerDB lines for one platform.
type Converter struct {
	platform string // "" keeps every platform
	seen     map[string]bool
	stats    Stats
	errors   []string
}

// NewConverter creates a Converter for platform. "all" and "" keep every
// mapping.
func NewConverter(platform string) *Converter {
	if strings.EqualFold(platform, "all") {
		platform = ""
	}
	return &Converter{platform: platform, seen: make(map[string]bool)}
}

// HostPlatform is the GameControllerDB platform name of the running OS.
func HostPlatform() string {
	switch runtime.GOOS {
	case "windows":
		return "Windows"
	case "darwin":
		return "Mac OS X"
	case "android":
		return "Android"
	case "ios":
		return "iOS"
	}
	return "Linux"
}

// StripComment removes a '#' comment. GameControllerDB only uses whole-line
// comments, but trailing ones are tolerated.
func StripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// ParseMapping parses "GUID,Name,key:value,...". The GUID must be 32 hex
// digits and every field after the name must be a key:value pair.
func ParseMapping(line string) (Mapping, error) {
	fields := strings.Split(strings.TrimSuffix(line, ","), ",")
	if len(fields) < 3 {
		return Mapping{}, fmt.Errorf("want GUID,name,mappings: got %d fields", len(fields))
	}
	guid := strings.ToLower(strings.TrimSpace(fields[0]))
	if !isGUID(guid) {
		return Mapping{}, fmt.Errorf("bad GUID %q", fields[0])
	}
	name := strings.TrimSpace(fields[1])
	if name == "" {
		return Mapping{}, fmt.Errorf("empty name for %s", guid)
	}

	m := Mapping{GUID: guid, Name: name}
	for _, f := range fields[2:] {
		key, value, ok := strings.Cut(f, ":")
		if !ok || key == "" {
			return Mapping{}, fmt.Errorf("%s: bad field %q", name, f)
		}
		if key == "platform" {
			m.Platform = value
		}
	}
	fields[0], fields[1] = guid, name
	m.Line = strings.Join(fields, ",") + ","
	return m, nil
}

func isGUID(s string) bool {
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Convert reads a GameControllerDB file and returns the mappings for the
// converter's platform in file order. The first mapping for a GUID wins.
// Malformed lines are counted and reported by Errors, not fatal.
func (c *Converter) Convert(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := StripComment(sc.Text())
		if line == "" {
			continue
		}
		c.stats.Lines++

		m, err := ParseMapping(line)
		if err != nil {
			c.stats.Malformed++
			c.errors = append(c.errors, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}
		if c.platform != "" && m.Platform != "" && !strings.EqualFold(m.Platform, c.platform) {
			c.stats.OtherOS++
			continue
		}
		key := m.GUID + "/" + strings.ToLower(m.Platform)
		if c.seen[key] {
			c.stats.Duplicates++
			continue
		}
		c.seen[key] = true
		c.stats.Kept++
		out = append(out, m.Line)
	}
	return out, sc.Err()
}

func (c *Converter) Stats() Stats     { return c.stats }
func (c *Converter) Errors() []string { return c.errors }

// configFragment is the part of the engine config this tool writes.
type configFragment struct {
	Joysticks zeni.JoystickConfig `yaml:"joysticks"`
}

// MarshalConfig renders mappings as a joysticks config section.
func MarshalConfig(mappings []string) ([]byte, error) {
	return yaml.Marshal(configFragment{
		Joysticks: zeni.JoystickConfig{Enabled: true, Mappings: mappings},
	})
}

// ConvertFileFromPath converts the file at path.
func (c *Converter) ConvertFileFromPath(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mappings, err := c.Convert(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return MarshalConfig(mappings)
}
