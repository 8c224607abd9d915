package knowledge

import (
	"fmt"
	"strings"
)

// Document kinds stored in the knowledge base.
const (
	// KindConversation marks past support conversations.
	KindConversation = "conversation"

	// KindProduct marks catalog products.
	KindProduct = "product"
)

// Product is a catalog entry eligible for recommendation.
type Product struct {
	Title string
	Type  string
}

// ConstructPrompt builds the chat model prompt for a query. conversations
// are relevant past exchanges; products are new recommendations grouped by
// category. Either may be empty.
func ConstructPrompt(query string, conversations []string, products []Product) string {
	var sb strings.Builder

	sb.WriteString("You are a knowledgeable representative of Rosemira, a trusted provider of skincare solutions.\n\n")
	fmt.Fprintf(&sb, "User Query: \"%s\"\n\n", query)

	if len(conversations) > 0 {
		sb.WriteString("Relevant Past Conversations:\n")
		for i, conv := range conversations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.TrimSpace(conv))
		}
	}

	if len(products) > 0 {
		sb.WriteString("\nRecommended Products by Category:\n")

		// Group by category, preserving first-seen order.
		var categories []string
		grouped := make(map[string][]string)
		for _, p := range products {
			if _, ok := grouped[p.Type]; !ok {
				categories = append(categories, p.Type)
			}
			grouped[p.Type] = append(grouped[p.Type], p.Title)
		}

		for _, category := range categories {
			fmt.Fprintf(&sb, "\n%s:\n", category)
			for _, title := range grouped[category] {
				fmt.Fprintf(&sb, "- %s\n", title)
			}
		}
	}

	sb.WriteString(
		"\nBased on the user's query and any past interactions, provide a clear, concise, and informative response. " +
			"Avoid suggesting products already mentioned in the conversation.",
	)

	return sb.String()
}
