package domain

// Category is one of the closed set of labels assigned to every link.
// The labels are the original Korean UI strings; they are stored verbatim
// so exported collections stay compatible with the extension clients.
type Category string

const (
	CategoryDev       Category = "개발"   // Development
	CategoryDesign    Category = "디자인"  // Design
	CategoryDocument  Category = "문서"   // Document
	CategoryLearning  Category = "학습"   // Learning
	CategoryNews      Category = "뉴스"   // News
	CategoryCommunity Category = "커뮤니티" // Community
	CategoryVideo     Category = "영상"   // Video
	CategoryShopping  Category = "쇼핑"   // Shopping
	CategoryOther     Category = "기타"   // Other
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryDev,
	CategoryDesign,
	CategoryDocument,
	CategoryLearning,
	CategoryNews,
	CategoryCommunity,
	CategoryVideo,
	CategoryShopping,
	CategoryOther,
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// OrDefault returns c when valid, CategoryOther otherwise.
// Classification output must never carry a label outside the closed set.
func (c Category) OrDefault() Category {
	if c.Valid() {
		return c
	}
	return CategoryOther
}
