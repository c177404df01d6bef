package memory

import "github.com/gdugdh24/cofounder-backend/internal/domain"

// SystemTags mirrors the catalogue seeded by the 00002 migration.
func SystemTags() []domain.Tag {
	specs := []struct {
		name     string
		category domain.TagCategory
		usage    int
	}{
		{"AI R&D", domain.TagCategoryAbility, 10},
		{"Product 0 to 1", domain.TagCategoryAbility, 15},
		{"Growth marketing", domain.TagCategoryAbility, 8},
		{"Fundraising", domain.TagCategoryAbility, 6},
		{"Team management", domain.TagCategoryAbility, 12},
		{"Data analysis", domain.TagCategoryAbility, 7},
		{"Design", domain.TagCategoryAbility, 5},
		{"Business dev", domain.TagCategoryAbility, 9},
		{"Tech architecture", domain.TagCategoryAbility, 11},
		{"Content operations", domain.TagCategoryAbility, 4},
		{"AIGC", domain.TagCategoryDirection, 20},
		{"Enterprise SaaS", domain.TagCategoryDirection, 18},
		{"Education", domain.TagCategoryDirection, 10},
		{"Developer tools", domain.TagCategoryDirection, 15},
		{"Consumer products", domain.TagCategoryDirection, 12},
		{"Technical partner", domain.TagCategoryRole, 25},
		{"Product partner", domain.TagCategoryRole, 22},
		{"Business partner", domain.TagCategoryRole, 20},
		{"Operations partner", domain.TagCategoryRole, 8},
		{"Generalist partner", domain.TagCategoryRole, 15},
	}

	tags := make([]domain.Tag, len(specs))
	for i, s := range specs {
		tags[i] = domain.Tag{
			ID:         i + 1,
			Name:       s.name,
			Category:   s.category,
			IsSystem:   true,
			UsageCount: s.usage,
		}
	}
	return tags
}
