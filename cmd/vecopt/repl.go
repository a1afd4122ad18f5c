package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/rawbytedev/vecoption"
	"github.com/rawbytedev/vecoption/pkg/optwire"
	"gopkg.in/yaml.v3"
)

var errUsage = errors.New("wrong number of arguments, try 'help'")

// Intp is our interpreter object
type Intp struct {
	vec  *vecoption.VecOption[int64]
	repl *readline.Instance
}

func newIntp() *Intp {
	return &Intp{vec: vecoption.New[int64]()}
}

func runREPL() error {
	repl, err := readline.New("vo > ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := newIntp()
	intp.repl = repl
	pterm.Info.Println("Welcome to the VecOption REPL")
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	intp.vec.Release()
	pterm.Info.Println("Good bye!")
}

type command struct {
	args int
	help string
	fn   func(*Intp, []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"push":         {1, "push <n|none>     append a slot", pushOp},
		"pop":          {0, "pop               remove the last slot", popOp},
		"get":          {1, "get <i>           show slot i", getOp},
		"take":         {1, "take <i>          move slot i out", takeOp},
		"replace":      {2, "replace <i> <n|none>", replaceOp},
		"swap":         {2, "swap <i> <j>", swapOp},
		"truncate":     {1, "truncate <n>      keep the first n slots", truncateOp},
		"clear":        {0, "clear             remove every slot", clearOp},
		"extend-none":  {1, "extend-none <n>   append n absent slots", extendNoneOp},
		"set-all-none": {0, "set-all-none      make every slot absent", setAllNoneOp},
		"show":         {0, "show              print the sequence", showOp},
		"yaml":         {0, "yaml              print the sequence as YAML", yamlOp},
		"save":         {1, "save <file>       write a snapshot", saveOp},
		"load":         {1, "load <file>       read a snapshot", loadOp},
		"help":         {0, "help", helpOp},
	}
}

// execute runs one command line. quit is true for 'quit'.
func (intp *Intp) execute(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	if name == "quit" {
		return true, nil
	}
	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("unknown command %q, try 'help'", name)
	}
	if len(fields)-1 != cmd.args {
		return false, fmt.Errorf("%s: %w", name, errUsage)
	}
	tracer().Debugf("command %s %v", name, fields[1:])
	return false, cmd.fn(intp, fields[1:])
}

func parseOption(s string) (vecoption.Option[int64], error) {
	if strings.EqualFold(s, "none") {
		return vecoption.None[int64](), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return vecoption.None[int64](), fmt.Errorf("not a number or 'none': %q", s)
	}
	return vecoption.Some(n), nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an index: %q", s)
	}
	return i, nil
}

func pushOp(intp *Intp, args []string) error {
	o, err := parseOption(args[0])
	if err != nil {
		return err
	}
	intp.vec.Push(o)
	return nil
}

func popOp(intp *Intp, _ []string) error {
	o, ok := intp.vec.Pop()
	if !ok {
		return errors.New("sequence is empty")
	}
	pterm.Println(o)
	return nil
}

func getOp(intp *Intp, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	o, ok := intp.vec.Get(i)
	if !ok {
		return fmt.Errorf("%w: index %d, length %d", vecoption.ErrIndexOutOfRange, i, intp.vec.Len())
	}
	pterm.Println(o)
	return nil
}

func takeOp(intp *Intp, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	o, err := intp.vec.Take(i)
	if err != nil {
		return err
	}
	pterm.Println(o)
	return nil
}

func replaceOp(intp *Intp, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	o, err := parseOption(args[1])
	if err != nil {
		return err
	}
	old, err := intp.vec.Replace(i, o)
	if err != nil {
		return err
	}
	pterm.Println(old)
	return nil
}

func swapOp(intp *Intp, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	j, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	return intp.vec.Swap(i, j)
}

func truncateOp(intp *Intp, args []string) error {
	n, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	intp.vec.Truncate(n)
	return nil
}

func clearOp(intp *Intp, _ []string) error {
	intp.vec.Clear()
	return nil
}

func extendNoneOp(intp *Intp, args []string) error {
	n, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	intp.vec.ExtendNone(n)
	return nil
}

func setAllNoneOp(intp *Intp, _ []string) error {
	intp.vec.SetAllNone()
	return nil
}

func showOp(intp *Intp, _ []string) error {
	v := intp.vec
	pterm.Println(v)
	info := v.CapacityInfo()
	pterm.Printf("len %d, present %d, capacity data=%d flag=%d\n", v.Len(), v.Count(), info.Data, info.Flag)
	return nil
}

func yamlOp(intp *Intp, _ []string) error {
	out, err := yaml.Marshal(intp.vec)
	if err != nil {
		return err
	}
	pterm.Print(string(out))
	return nil
}

func saveOp(intp *Intp, args []string) error {
	enc, err := optwire.NewEncoder[int64](optwire.Options{Compression: true, Checksum: true})
	if err != nil {
		return err
	}
	defer enc.Close()
	frame, err := enc.Encode(intp.vec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], frame, 0o644); err != nil {
		return err
	}
	tracer().Infof("saved %d slots to %s (%d bytes)", intp.vec.Len(), args[0], len(frame))
	return nil
}

func loadOp(intp *Intp, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	dec, err := optwire.NewDecoder[int64]()
	if err != nil {
		return err
	}
	defer dec.Close()
	v, err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	intp.vec.Release()
	intp.vec = v
	tracer().Infof("loaded %d slots from %s", v.Len(), args[0])
	return nil
}

func helpOp(_ *Intp, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	data := [][]string{{"Command", "Usage"}}
	for _, name := range names {
		data = append(data, []string{name, commands[name].help})
	}
	data = append(data, []string{"quit", "quit"})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}
