package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-cascade/cli/internal/ui"
)

var explainCmd = &cobra.Command{
	Use:       "explain [topic]",
	Short:     "Explain a kind of referential action conflict",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: explainTopicNames(),
	RunE:      runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

type explainTopic struct {
	name    string
	summary string
	body    string
}

var explainTopics = []explainTopic{
	{
		name:    "cycle",
		summary: "relations that cascade back to where they started",
		body: `# Cascade cycles

A cycle exists when following relations with cascading referential actions
leads back to the model you started from:

` + "```prisma" + `
model A {
  id  Int @id
  bId Int
  b   B   @relation(fields: [bId], references: [id])
}

model B {
  id  Int @id
  aId Int
  a   A   @relation(fields: [aId], references: [id])
}
` + "```" + `

Deleting or updating a row of ` + "`A`" + ` would change ` + "`B`" + `, which would change ` + "`A`" + `
again. SQL Server refuses to create such foreign keys.

## Fix

Set both actions of one relation in the cycle to ` + "`NoAction`" + `:

` + "```prisma" + `
a A @relation(fields: [aId], references: [id], onDelete: NoAction, onUpdate: NoAction)
` + "```" + `

Remember that ` + "`onUpdate`" + ` defaults to ` + "`Cascade`" + ` when it is left out.
`,
	},
	{
		name:    "multi-path",
		summary: "one model reachable from another along separate cascade paths",
		body: `# Multiple cascade paths

Two or more chains of cascading relations that share no relation lead from
the same model to the same model:

` + "```prisma" + `
model Post {
  id       Int  @id
  authorId Int
  editorId Int
  author   User @relation("Author", fields: [authorId], references: [id], onDelete: Cascade)
  editor   User @relation("Editor", fields: [editorId], references: [id], onDelete: Cascade)
}
` + "```" + `

Deleting a ` + "`User`" + ` reaches ` + "`Post`" + ` twice. SQL Server cannot decide the order
and rejects the schema.

## Fix

Break one path: set ` + "`onDelete`" + ` and ` + "`onUpdate`" + ` of one of its relations to
` + "`NoAction`" + ` and handle the change in application code.
`,
	},
	{
		name:    "self-relation",
		summary: "a model whose relation to itself cascades",
		body: `# Self-relations

A relation from a model to itself with a cascading action would have the
database cascade into the same table:

` + "```prisma" + `
model Employee {
  id        Int        @id
  managerId Int?
  manager   Employee?  @relation("Reports", fields: [managerId], references: [id])
  reports   Employee[] @relation("Reports")
}
` + "```" + `

The optional relation defaults to ` + "`onDelete: SetNull`" + ` and ` + "`onUpdate: Cascade`" + `,
both of which SQL Server rejects on a self-relation.

## Fix

Set both actions to ` + "`NoAction`" + `.
`,
	},
	{
		name:    "actions",
		summary: "referential actions and their defaults",
		body: `# Referential actions

| Action | Effect on referencing rows |
|---|---|
| ` + "`Cascade`" + ` | deleted or updated along with the referenced row |
| ` + "`Restrict`" + ` | the change is refused while rows reference it |
| ` + "`NoAction`" + ` | like Restrict, checked at the end of the statement |
| ` + "`SetNull`" + ` | the foreign key is set to NULL |
| ` + "`SetDefault`" + ` | the foreign key is set to its default |

When a relation does not spell an action out:

- ` + "`onDelete`" + ` is ` + "`SetNull`" + ` for optional relations and ` + "`NoAction`" + ` otherwise.
- ` + "`onUpdate`" + ` is ` + "`Cascade`" + `.

Every action except ` + "`NoAction`" + ` counts as cascading for cycle and path checks.
SQL Server does not support ` + "`Restrict`" + `, and ` + "`SetDefault`" + ` is not available with
` + "`relationMode = \"prisma\"`" + `.
`,
	},
}

func explainTopicNames() []string {
	names := make([]string, len(explainTopics))
	for i, t := range explainTopics {
		names[i] = t.name
	}
	return names
}

func explainOverview() string {
	var b strings.Builder
	b.WriteString("# prisma-cascade explain\n\nTopics:\n\n")
	for _, t := range explainTopics {
		fmt.Fprintf(&b, "- `%s`: %s\n", t.name, t.summary)
	}
	b.WriteString("\nRun `prisma-cascade explain <topic>`.\n")
	return b.String()
}

func runExplain(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ui.PrintMarkdown(explainOverview())
	}
	i := slices.IndexFunc(explainTopics, func(t explainTopic) bool { return t.name == args[0] })
	if i < 0 {
		return fmt.Errorf("unknown topic %q (want one of %s)", args[0], strings.Join(explainTopicNames(), ", "))
	}
	return ui.PrintMarkdown(explainTopics[i].body)
}
