package classify

import "github.com/linkminder/linkminder/internal/domain"

// DefaultRules are the built-in heuristic rules, evaluated after any
// user-defined rules. They are immutable; the rule editor only appends
// user rules alongside them.
var DefaultRules = []domain.Rule{
	{
		ID:           "dev-github",
		Label:        "Git hosting",
		Category:     domain.CategoryDev,
		Tags:         []string{"dev", "git"},
		HostIncludes: []string{"github.com", "gitlab.com", "bitbucket.org"},
	},
	{
		ID:           "dev-docs",
		Label:        "API reference",
		Category:     domain.CategoryDev,
		Tags:         []string{"docs"},
		HostIncludes: []string{"developer.mozilla.org", "docs.google", "api.", "dev."},
	},
	{
		ID:       "learning",
		Label:    "Learning",
		Category: domain.CategoryLearning,
		Tags:     []string{"learn"},
		Keywords: []string{"tutorial", "guide", "how to", "learn", "study"},
	},
	{
		ID:           "video",
		Label:        "Video platforms",
		Category:     domain.CategoryVideo,
		Tags:         []string{"video"},
		HostIncludes: []string{"youtube.com", "youtu.be", "vimeo.com", "shorts"},
	},
	{
		ID:           "news",
		Label:        "News sites",
		Category:     domain.CategoryNews,
		Tags:         []string{"news"},
		HostIncludes: []string{"news", "nytimes.com", "cnn.com", "bbc.com", "khan.co.kr", "joongang"},
	},
	{
		ID:           "community",
		Label:        "Community / forum",
		Category:     domain.CategoryCommunity,
		Tags:         []string{"community"},
		Keywords:     []string{"forum", "discussion", "community", "stackoverflow", "stack exchange"},
		HostIncludes: []string{"reddit.com", "stackoverflow.com", "stackexchange.com", "discord.com"},
	},
	{
		ID:           "shopping",
		Label:        "Shopping",
		Category:     domain.CategoryShopping,
		Tags:         []string{"shopping"},
		HostIncludes: []string{"amazon.", "smartstore.naver.com", "coupang", "gmarket"},
	},
}
