package lookup

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Placeholder is replaced by the escaped word in a lookup URL template
const Placeholder = "{word}"

// DefaultURL looks words up on zdic.net
const DefaultURL = "https://www.zdic.net/hans/" + Placeholder

// Opener opens an online dictionary entry for a word in the system browser
type Opener struct {
	template string
	run      func(uri string) error
}

// NewOpener creates an opener for the given URL template
func NewOpener(template string) *Opener {
	return &Opener{
		template: template,
		run:      openURI,
	}
}

// Open opens the dictionary page for word
func (o *Opener) Open(word string) error {
	uri, err := o.BuildURL(word)
	if err != nil {
		return err
	}
	return o.run(uri)
}

// BuildURL substitutes the path-escaped word into the template
func (o *Opener) BuildURL(word string) (string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", errors.New("no word to look up")
	}
	if !strings.Contains(o.template, Placeholder) {
		return "", fmt.Errorf("lookup url %q has no %s placeholder", o.template, Placeholder)
	}
	return strings.ReplaceAll(o.template, Placeholder, url.PathEscape(word)), nil
}

func openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
