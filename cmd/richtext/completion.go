package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-richtext/internal/assets"
)

// Shell is a shell that completion scripts can be generated for.
type Shell string

// Supported shells.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var shells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType selects how a flag value is completed.
type flagType int

const (
	flagString flagType = iota // free text, no suggestions
	flagBool
	flagInt
	flagEnum // fixed values
	flagFile // file matching FileGlob
	flagDir
)

// flagDef describes a flag for completion.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string
	FileGlob string
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values, e.g. shell names
	FilePattern string   // glob for file arguments, e.g. "*.json,*.md"
}

// completionMeta holds value hints that a FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta returns value hints keyed by "command/flag", falling
// back to "flag".
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"style":         {Values: assets.StyleNames()},
		"template":      {Values: []string{assets.DefaultTemplateName}},
		"config":        {FileGlob: "*.yaml,*.yml"},
		"asset-path":    {IsDir: true},
		"render/output": {IsDir: true},
		"import/output": {FileGlob: "*.json"},
	}
}

// extractFlags converts the flags registered on fs for command cmd.
func extractFlags(cmd string, fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		m, ok := meta[cmd+"/"+f.Name]
		if !ok {
			m, ok = meta[f.Name]
		}
		if ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands returns the command registry. Flags come from the same
// registration functions the commands parse with.
func getCommands() []commandDef {
	renderFS := flag.NewFlagSet("render", flag.ContinueOnError)
	registerRenderFlags(renderFS, &renderFlags{})
	importFS := flag.NewFlagSet("import", flag.ContinueOnError)
	registerImportFlags(importFS, &importFlags{})
	checkFS := flag.NewFlagSet("check", flag.ContinueOnError)
	registerCheckFlags(checkFS, &checkFlags{})

	shellNames := make([]string, len(shells))
	for i, s := range shells {
		shellNames[i] = string(s)
	}

	cmds := []commandDef{
		{
			Name:        "render",
			Desc:        "Render Lexical JSON or Markdown to HTML",
			Flags:       extractFlags("render", renderFS),
			FilePattern: "*.json,*.md,*.markdown",
		},
		{
			Name:        "import",
			Desc:        "Convert Markdown to Lexical JSON",
			Flags:       extractFlags("import", importFS),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:        "check",
			Desc:        "Report nodes that would be skipped",
			Flags:       extractFlags("check", checkFS),
			FilePattern: "*.json,*.md,*.markdown",
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script", Args: shellNames},
	}

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	for i := range cmds {
		if cmds[i].Name == "help" {
			cmds[i].Args = names
		}
	}
	return cmds
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	cmds := getCommands()

	switch shell {
	case ShellBash:
		writeBash(&b, cmds)
	case ShellZsh:
		writeZsh(&b, cmds)
	case ShellFish:
		writeFish(&b, cmds)
	case ShellPowerShell:
		writePowerShell(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:        eval \"$(richtext completion bash)\" in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:         eval \"$(richtext completion zsh)\" in ~/.zshrc, after compinit")
	fmt.Fprintln(w, "  Fish:        richtext completion fish > ~/.config/fish/completions/richtext.fish")
	fmt.Fprintln(w, "  PowerShell:  richtext completion powershell | Out-String | Invoke-Expression")
}

// globExts turns "*.json,*.md" into []string{"json", "md"}.
func globExts(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if g = strings.TrimPrefix(strings.TrimSpace(g), "*."); g != "" {
			exts = append(exts, g)
		}
	}
	return exts
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func flagWords(f flagDef) []string {
	words := []string{"--" + f.Long}
	if f.Short != "" {
		words = append(words, "-"+f.Short)
	}
	return words
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func bashFileReply(glob string) string {
	return fmt.Sprintf(`COMPREPLY=($(compgen -f -X '!*.@(%s)' -- "$cur") $(compgen -d -- "$cur"))`,
		strings.Join(globExts(glob), "|"))
}

func writeBash(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# bash completion for richtext\n")
	b.WriteString("shopt -s extglob\n\n")
	b.WriteString("_richtext_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    COMPREPLY=()\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && c.FilePattern == "" {
			continue
		}
		fmt.Fprintf(b, "    %s)\n", c.Name)

		if len(c.Flags) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			var words []string
			for _, f := range c.Flags {
				words = append(words, flagWords(f)...)
				if f.Type == flagBool {
					continue
				}
				fmt.Fprintf(b, "        %s)\n", strings.Join(flagWords(f), "|"))
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(b, "            %s\n", bashFileReply(f.FileGlob))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
				}
				b.WriteString("            return\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(words, " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}

		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(b, "        %s\n", bashFileReply(c.FilePattern))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _richtext_completions richtext\n")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

var zshEscaper = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func zshFlagSpec(f flagDef) string {
	desc := zshEscaper.Replace(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":%s:_files -g \"*.(%s)\"", f.Long, strings.Join(globExts(f.FileGlob), "|"))
	case flagDir:
		action = fmt.Sprintf(":%s:_files -/", f.Long)
	default:
		action = fmt.Sprintf(":%s: ", f.Long)
	}

	if f.Short == "" {
		return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

func writeZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef richtext\n\n")
	b.WriteString("_richtext() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshEscaper.Replace(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=$words[2]\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case $cmd in\n")

	for _, c := range cmds {
		switch {
		case c.Name == "help":
			b.WriteString("    help)\n")
			b.WriteString("        _describe 'command' commands\n")
			b.WriteString("        ;;\n")
		case len(c.Args) > 0:
			fmt.Fprintf(b, "    %s)\n", c.Name)
			fmt.Fprintf(b, "        _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
			b.WriteString("        ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(b, "    %s)\n", c.Name)
			b.WriteString("        _arguments -s \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(b, "            %s \\\n", zshFlagSpec(f))
			}
			fmt.Fprintf(b, "            '*:input:_files -g \"*.(%s)\"'\n", strings.Join(globExts(c.FilePattern), "|"))
			b.WriteString("        ;;\n")
		}
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _richtext richtext\n")
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

var fishEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func fishSuffixes(glob string) string {
	var parts []string
	for _, ext := range globExts(glob) {
		parts = append(parts, "(__fish_complete_suffix ."+ext+")")
	}
	return strings.Join(parts, " ")
}

func writeFish(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# fish completion for richtext\n\n")
	b.WriteString("function __fish_richtext_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_richtext_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c richtext -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c richtext -n __fish_richtext_needs_command -a %s -d '%s'\n", c.Name, fishEscaper.Replace(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_richtext_using_command %s'", c.Name)
		if len(c.Flags) > 0 || len(c.Args) > 0 || c.FilePattern != "" {
			fmt.Fprintf(b, "\n# %s\n", c.Name)
		}
		for _, f := range c.Flags {
			fmt.Fprintf(b, "complete -c richtext -n %s", cond)
			if f.Short != "" {
				fmt.Fprintf(b, " -s %s", f.Short)
			}
			fmt.Fprintf(b, " -l %s -d '%s'", f.Long, fishEscaper.Replace(f.Desc))
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(b, " -r -a '%s'", fishSuffixes(f.FileGlob))
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -x")
			}
			b.WriteString("\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, "complete -c richtext -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(b, "complete -c richtext -n %s -a '%s'\n", cond, fishSuffixes(c.FilePattern))
		}
	}
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

var psEscaper = strings.NewReplacer("'", "''")

func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + psEscaper.Replace(s) + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func writePowerShell(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# PowerShell completion for richtext\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName richtext -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s' = '%s'\n", c.Name, psEscaper.Replace(c.Desc))
	}
	b.WriteString("    }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		var words []string
		for _, f := range c.Flags {
			words = append(words, flagWords(f)...)
		}
		fmt.Fprintf(b, "        '%s' = %s\n", c.Name, psList(words))
	}
	b.WriteString("    }\n")
	b.WriteString("    $values = @{\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			fmt.Fprintf(b, "        '--%s' = %s\n", f.Long, psList(f.Values))
		}
	}
	b.WriteString("    }\n")
	b.WriteString("    $positional = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(b, "        '%s' = %s\n", c.Name, psList(c.Args))
		}
	}
	b.WriteString("    }\n\n")
	b.WriteString("    function Complete($items, $type) {\n")
	b.WriteString("        $items | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, $type, $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")
	b.WriteString("    if ($words.Count -eq 1 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $commands[$_])\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $words[1]\n")
	b.WriteString("    $prev = if ($wordToComplete -eq '') { $words[-1] } else { $words[-2] }\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        Complete $values[$prev] 'ParameterValue'\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n")
	b.WriteString("    if ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {\n")
	b.WriteString("        Complete $flags[$cmd] 'ParameterName'\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n")
	b.WriteString("    if ($positional.ContainsKey($cmd)) {\n")
	b.WriteString("        Complete $positional[$cmd] 'ParameterValue'\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
}
