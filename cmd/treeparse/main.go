package main

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/treeparse/treeparse/interp"
	"github.com/treeparse/treeparse/lexer"
)

var (
	ebnfFlag      = kingpin.Flag("ebnf", "Classify tokens with the EBNF lexical grammar in this file.").ExistingFile()
	traceFlag     = kingpin.Flag("trace", "Trace grammar rules to stderr.").Bool()
	treeFlag      = kingpin.Flag("tree", "Print the recognition tree of each expression.").Bool()
	astFlag       = kingpin.Flag("ast", "Print the AST of each expression.").Bool()
	dumpFlag      = kingpin.Flag("dump", "Dump the parsed expression instead of evaluating it.").Bool()
	operatorsFlag = kingpin.Flag("operators", "List supported operators and exit.").Bool()
	exprArgs      = kingpin.Arg("expression", "Expressions to evaluate. Read one per line from stdin if omitted.").Strings()
)

func main() {
	kingpin.CommandLine.Help = `Evaluate arithmetic expressions.

Expressions combine numbers with + - * and /, which bind tighter, and
parentheses:

  treeparse "1 + 2 * (3 - 1)"
`
	kingpin.Parse()

	if *operatorsFlag {
		fmt.Println(strings.Join(interp.Standard().Symbols(), " "))
		return
	}

	options := []interp.Option{}
	if *ebnfFlag != "" {
		grammar, err := ioutil.ReadFile(*ebnfFlag)
		kingpin.FatalIfError(err, "")
		def, err := lexer.EBNF(string(grammar))
		kingpin.FatalIfError(err, "%s", *ebnfFlag)
		options = append(options, interp.Lexer(def))
	}
	if *traceFlag {
		options = append(options, interp.Trace(os.Stderr))
	}
	interpreter, err := interp.New(options...)
	kingpin.FatalIfError(err, "")

	sources := *exprArgs
	if len(sources) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				sources = append(sources, line)
			}
		}
		kingpin.FatalIfError(scanner.Err(), "")
	}

	failed := false
	for _, source := range sources {
		if err := evaluate(interpreter, source); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", source, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func evaluate(interpreter *interp.Interpreter, source string) error {
	if *treeFlag {
		tree, err := interpreter.Tree(source)
		if err != nil {
			return err
		}
		fmt.Println(tree)
	}
	if *astFlag {
		ast, err := interpreter.AST(source)
		if err != nil {
			return err
		}
		fmt.Println(ast)
	}
	if *dumpFlag {
		expr, err := interpreter.Parse(source)
		if err != nil {
			return err
		}
		repr.Println(expr, repr.Indent("  "), repr.OmitEmpty(true))
		return nil
	}
	value, err := interpreter.Interpret(source)
	if err != nil {
		return err
	}
	fmt.Println(value.Value)
	return nil
}
