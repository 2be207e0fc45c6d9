package resolver

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/eiannone/keyboard"
)

// TerminalPrompt reads a single keystroke from the controlling terminal.
// When the terminal cannot be put into raw mode (no TTY, pipes) it falls
// back to a buffered line read.
func TerminalPrompt(question string) (rune, error) {
	if err := keyboard.Open(); err != nil {
		return linePrompt(question)
	}
	defer keyboard.Close()

	fmt.Print(question)
	ch, key, err := keyboard.GetKey()
	fmt.Println()
	if err != nil {
		return 0, err
	}
	if ch == 0 && key == keyboard.KeyEnter {
		return '\n', nil
	}
	return ch, nil
}

func linePrompt(question string) (rune, error) {
	fmt.Print(question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return 0, err
		}
		return '\n', nil
	}
	return []rune(line)[0], nil
}
