package cmd

import (
	"bufio"
	"fmt"
	"os"
)

// confirmIfExists reports whether the caller should proceed writing to
// path: true if it doesn't exist yet, or if the user confirms overwriting
// it. Grounded on cmd/recast/cmd/cli.go's confirmIfExists/askForConfirmation.
func confirmIfExists(path, msg string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return askForConfirmation(msg), nil
}

func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	reader := bufio.NewReader(os.Stdin)
	defaultInput := byte('N')

	for {
		input, _ := reader.ReadString('\n')
		if len(input) == 0 {
			return false
		}
		c := input[0]
		if c == '\n' {
			c = defaultInput
		}
		switch c {
		case 'Y', 'y':
			return true
		case 'N', 'n':
			return false
		}
	}
}
