package cache

import (
	"fmt"
	"time"
)

// key names definition
const (
	SidebarKeyPrefix  = "sidebar:"
	SidebarKeyPattern = "sidebar:*"
	SidebarKey        = "sidebar:%s:%d" // '%s' is the snippet name, '%d' its limit (0 for no limit)
)

// SidebarTTL bounds how stale a snippet can get when no catalog event
// arrives to drop it.
const SidebarTTL = 5 * time.Minute

func MakeSidebarKey(name string, limit int) string {
	return fmt.Sprintf(SidebarKey, name, limit)
}
