package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"

	"go.pasci.dev/internal/config"
	"go.pasci.dev/internal/repl"
)

const usage = `usage: pasci [options] [file]

options:
  -f FILE  load settings from FILE (default pasci.yaml)
  -e       expression mode: every line is a single expression
  -r       reset variables before every input
  -d N     maximum nesting depth
  -a       print the syntax tree of every input
  -t       print the tokens of every input
  -n       disable colored output
  -h       show this help

With a file argument the program in it is run once and the final variables are printed.`

func main() {
	if err := realMain(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func realMain(args []string) error {
	opts, optind, err := getopt.Getopts(args, "f:erd:atnh")
	if err != nil {
		return err
	}

	cfgFile := "pasci.yaml"
	for _, opt := range opts {
		if opt.Option == 'f' {
			cfgFile = opt.Value
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	var printAST, printTokens bool
	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			cfg.Mode = config.ModeExpression
		case 'r':
			cfg.Persist = false
		case 'd':
			depth, err := strconv.Atoi(opt.Value)
			if err != nil || depth <= 0 {
				return fmt.Errorf("invalid -d parameter %q", opt.Value)
			}
			cfg.MaxDepth = depth
		case 'a':
			printAST = true
		case 't':
			printTokens = true
		case 'n':
			cfg.Color = false
		case 'h':
			fmt.Println(usage)
			return nil
		}
	}

	r := repl.New(cfg, os.Stdout)
	r.PrintAST = printAST
	r.PrintTokens = printTokens

	if rest := args[optind:]; len(rest) > 0 {
		interp := r.Interpreter()
		if err := interp.RunFile(rest[0]); err != nil {
			r.ReportError(err)
			os.Exit(1)
		}

		fmt.Println(interp.Env())
		return nil
	}

	return r.Run(os.Stdin)
}
