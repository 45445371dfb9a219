package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ConfirmPrompt asks a yes/no question on the terminal. Anything but an
// explicit yes declines.
func ConfirmPrompt(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
