package testutil

import "foliochat/config"

const TestGreeting = "Hello! Ask me anything."

// TestConfig returns a config pointing at baseURL with a short greeting.
func TestConfig(baseURL string) *config.Config {
	return &config.Config{
		DataDirectory: "",
		BaseURL:       baseURL,
		Greeting:      TestGreeting,
		LogLevel:      "debug",
	}
}

// MarkdownReply is a reply exercising every block and span kind.
const MarkdownReply = `## Projects
- [Portfolio](https://example.test/portfolio) site
- *Agent* framework

---
See https://example.test/blog for more.`
