package scaffold

import (
	"fmt"
	"strings"

	"repolens/internal/analysis"
)

// gitignoreBodies are per-label ignore file starters. The generic body is
// used for unclassified repositories and labels without a specific entry.
var gitignoreBodies = map[string]string{
	"go": `# Binaries and build output
/bin/
/dist/
*.exe
*.test
*.out

# Tooling
.idea/
.vscode/
`,
	"node": `node_modules/
dist/
build/
*.log
.env
.env.local
`,
	"python": `__pycache__/
*.py[cod]
.venv/
venv/
dist/
build/
*.egg-info/
.env
`,
	"rust": `/target/
Cargo.lock
`,
	"java": `target/
build/
*.class
*.jar
.gradle/
`,
	"generic": `# Build output
dist/
build/
out/

# Environment
.env
*.log
`,
}

// frameworkFallbacks maps framework labels onto the language body to use.
var frameworkFallbacks = map[string]string{
	"react":   "node",
	"nextjs":  "node",
	"vue":     "node",
	"angular": "node",
	"express": "node",
	"django":  "python",
	"flask":   "python",
	"fastapi": "python",
	"gin":     "go",
	"echo":    "go",
	"rails":   "generic",
	"spring":  "java",
}

const licensePlaceholder = `TODO: choose a license.

Common choices: MIT, Apache-2.0, BSD-3-Clause, GPL-3.0.
See https://choosealicense.com/ for guidance. Replace this file with the
full license text once chosen.
`

const ciStub = `name: ci
on:
  push:
    branches: [main]
  pull_request:

jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      # TODO: add build and test steps for this project
`

// writeTemplate emits a heredoc creating the named file with a
// label-appropriate body, guarded so an existing file is never clobbered.
func writeTemplate(b *strings.Builder, res *analysis.Result, path string) {
	body := templateBody(res.Classification.Label, path)
	if body == "" {
		fmt.Fprintf(b, "touch %s\n", shellQuote(path))
		return
	}
	fmt.Fprintf(b, "if [ ! -e %s ]; then\ncat > %s <<'REPOLENS_EOF'\n%sREPOLENS_EOF\nfi\n",
		shellQuote(path), shellQuote(path), body)
}

func templateBody(label, path string) string {
	switch {
	case strings.HasSuffix(path, ".gitignore"):
		if body, ok := gitignoreBodies[label]; ok {
			return body
		}
		if lang, ok := frameworkFallbacks[label]; ok {
			return gitignoreBodies[lang]
		}
		return gitignoreBodies["generic"]
	case strings.HasPrefix(path, "LICENSE"), path == "COPYING":
		return licensePlaceholder
	case strings.Contains(path, "workflows/"):
		return ciStub
	case path == "README.md":
		return fmt.Sprintf("# %s\n\nTODO: describe this project.\n", projectName(label))
	}
	return ""
}

func projectName(label string) string {
	if label == "" || label == "unclassified" {
		return "Project"
	}
	return strings.ToUpper(label[:1]) + label[1:] + " project"
}
