package vocab

// Token tables for the fast vocabulary scan. Entries are regex-safe:
// literals escaped where needed (C\+\+, Node\.js) so they can be wrapped
// in word-boundary patterns as-is.

// Languages lists known programming languages.
var Languages = []string{
	"JavaScript", "TypeScript", "Python", "Go", "Golang", "Rust", "Java", "Ruby",
	"PHP", `C\+\+`, "C#", "Swift", "Kotlin", "Scala", "Dart", "Elixir",
	"Haskell", "Clojure", "R", "MATLAB", "Julia", "Perl", "Lua", "Shell",
	"Bash", "PowerShell", "SQL", "HTML", "CSS", "SASS", "SCSS", "Solidity",
}

// Frameworks lists frameworks and libraries.
var Frameworks = []string{
	"React", `React\.js`, "ReactJS", "Vue", `Vue\.js`, "VueJS", "Angular",
	`Next\.js`, "NextJS", "Nuxt", "Svelte", "SvelteKit", "Remix",
	`Node\.js`, "NodeJS", "Express", `Express\.js`, "Fastify", "NestJS", "Koa",
	"Django", "Flask", "FastAPI", "Spring", "Spring Boot", "Rails", "Ruby on Rails",
	"Laravel", "Symfony", `ASP\.NET`, `\.NET Core`, "Gin", "Echo", "Fiber",
	"TensorFlow", "PyTorch", "Keras", "Scikit-learn", "Pandas", "NumPy",
	"jQuery", "Bootstrap", "Tailwind", "TailwindCSS", "Material UI", "Chakra UI",
	"Redux", "MobX", "Zustand", "Recoil", "GraphQL", "Apollo", "tRPC",
	"Prisma", "Drizzle", "Sequelize", "TypeORM", "Mongoose",
}

// DevOpsTools lists infrastructure, cloud and operations tooling.
var DevOpsTools = []string{
	"Docker", "Kubernetes", "K8s", "Helm", "Terraform", "Ansible", "Puppet", "Chef",
	"AWS", "Amazon Web Services", "GCP", "Google Cloud", "Azure", "DigitalOcean",
	"Vercel", "Netlify", "Heroku", "Railway", `Fly\.io`,
	"Jenkins", "GitHub Actions", "GitLab CI", "CircleCI", "Travis CI",
	"Nginx", "Apache", "Caddy", "HAProxy",
	"Prometheus", "Grafana", "Datadog", "New Relic", "Sentry",
	"Linux", "Ubuntu", "CentOS", "Debian", "RHEL",
}

// Datastores lists databases and storage services.
var Datastores = []string{
	"PostgreSQL", "Postgres", "MySQL", "MariaDB", "SQLite", "Oracle", "SQL Server",
	"MongoDB", "Redis", "Elasticsearch", "Cassandra", "DynamoDB", "CouchDB",
	"Neo4j", "InfluxDB", "TimescaleDB", "Supabase", "Firebase", "PlanetScale",
	"Firestore", "Fauna", "CockroachDB",
}

// Interest is one topical interest tag with the keyword phrases that signal it.
type Interest struct {
	Name     string
	Keywords []string
}

// Interests is the closed interest vocabulary. Order is fixed so both the
// extractor and the scorer behave deterministically.
var Interests = []Interest{
	{"web", []string{"web development", "frontend", "backend", "full stack", "fullstack", "web app", "website"}},
	{"mobile", []string{"mobile", "android", "ios", "react native", "flutter", "swift", "kotlin"}},
	{"machine-learning", []string{"machine learning", "ml", "deep learning", "neural network", "ai", "artificial intelligence", "nlp", "computer vision"}},
	{"devops", []string{"devops", "ci/cd", "infrastructure", "cloud", "sre", "site reliability"}},
	{"security", []string{"security", "cybersecurity", "infosec", "penetration testing", "ethical hacking"}},
	{"blockchain", []string{"blockchain", "web3", "smart contract", "solidity", "ethereum", "defi", "nft"}},
	{"database", []string{"database", "data engineering", "data pipeline", "etl", "data warehouse"}},
	{"api", []string{"api", "rest", "graphql", "microservices", "backend"}},
	{"frontend", []string{"frontend", "ui", "ux", "user interface", "user experience", "css", "design system"}},
	{"backend", []string{"backend", "server", "api", "database", "microservice"}},
	{"testing", []string{"testing", "qa", "quality assurance", "test automation", "unit test", "e2e"}},
	{"documentation", []string{"documentation", "technical writing", "docs"}},
	{"cli", []string{"cli", "command line", "terminal", "shell script"}},
}

// InterestKeywords returns the keyword list for a known interest tag, or nil.
func InterestKeywords(name string) []string {
	for _, interest := range Interests {
		if interest.Name == name {
			return interest.Keywords
		}
	}
	return nil
}

// KnownInterest reports whether name is part of the closed interest vocabulary.
func KnownInterest(name string) bool {
	return InterestKeywords(name) != nil
}
