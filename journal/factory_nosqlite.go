//go:build !sqlite

package journal

import "fmt"

func newSQLiteStore(_ string) (Store, error) {
	return nil, fmt.Errorf("sqlite journal unavailable in this build; rebuild with -tags sqlite")
}
