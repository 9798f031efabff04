package redis

const (
	// KeyPrefixLink is the prefix for link record keys
	KeyPrefixLink = "linkminder:link:"
	// KeyLinkOrder is the list of link IDs, newest first
	KeyLinkOrder = "linkminder:links:order"
	// KeyLinksByURL is the hash mapping normalized URL -> link ID
	KeyLinksByURL = "linkminder:links:byurl"

	// KeyPrefixRule is the prefix for custom rule keys
	KeyPrefixRule = "linkminder:rule:"
	// KeyRuleOrder is the list of rule IDs, in declaration order
	KeyRuleOrder = "linkminder:rules:order"

	// KeyPrivatePin holds the private-view PIN
	KeyPrivatePin = "linkminder:pin"
)

// LinkKey returns the Redis key for a link record by ID
func LinkKey(id string) string {
	return KeyPrefixLink + id
}

// RuleKey returns the Redis key for a custom rule by ID
func RuleKey(id string) string {
	return KeyPrefixRule + id
}
