package vocab

import "strings"

// aliases resolves case and spelling variants of a token to one display
// string. Lookups are always lowercased first.
var aliases = map[string]string{
	"javascript":          "JavaScript",
	"typescript":          "TypeScript",
	"python":              "Python",
	"golang":              "Go",
	"go":                  "Go",
	"rust":                "Rust",
	"java":                "Java",
	"ruby":                "Ruby",
	"php":                 "PHP",
	"c++":                 "C++",
	"c#":                  "C#",
	"swift":               "Swift",
	"kotlin":              "Kotlin",
	"react":               "React",
	"react.js":            "React",
	"reactjs":             "React",
	"vue":                 "Vue",
	"vue.js":              "Vue",
	"vuejs":               "Vue",
	"angular":             "Angular",
	"next.js":             "Next.js",
	"nextjs":              "Next.js",
	"node.js":             "Node.js",
	"nodejs":              "Node.js",
	"express":             "Express",
	"express.js":          "Express",
	"django":              "Django",
	"flask":               "Flask",
	"fastapi":             "FastAPI",
	"spring":              "Spring",
	"spring boot":         "Spring Boot",
	"rails":               "Rails",
	"ruby on rails":       "Rails",
	"laravel":             "Laravel",
	"docker":              "Docker",
	"kubernetes":          "Kubernetes",
	"k8s":                 "Kubernetes",
	"aws":                 "AWS",
	"amazon web services": "AWS",
	"gcp":                 "GCP",
	"google cloud":        "GCP",
	"azure":               "Azure",
	"postgresql":          "PostgreSQL",
	"postgres":            "PostgreSQL",
	"mysql":               "MySQL",
	"mongodb":             "MongoDB",
	"redis":               "Redis",
	"tensorflow":          "TensorFlow",
	"pytorch":             "PyTorch",
	"tailwind":            "Tailwind CSS",
	"tailwindcss":         "Tailwind CSS",
	"graphql":             "GraphQL",
	"prisma":              "Prisma",
	"supabase":            "Supabase",
	"firebase":            "Firebase",
}

// Canonical maps a matched token to its canonical display form. The mapping
// is total: tokens without a known alias are returned unchanged.
func Canonical(token string) string {
	if canonical, ok := Lookup(token); ok {
		return canonical
	}
	return token
}

// Lookup resolves a token through the alias table, reporting whether an
// alias exists. Lookups are case-insensitive.
func Lookup(token string) (string, bool) {
	canonical, ok := aliases[strings.ToLower(strings.TrimSpace(token))]
	return canonical, ok
}
