package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/types"
)

// Catalog is the compiled content of a catalog directory.
type Catalog struct {
	Quests  []quest.Definition
	Sectors []types.Sector
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	contracts []rawContract
	sectors   []rawSector
}

// Load reads all .lua files from dir, compiles them into quest definitions
// and sectors, validates references, and returns the Catalog. The Lua VM is
// discarded after loading. Warnings are logged, errors are returned as a
// *ValidationError.
func Load(dir string, log *slog.Logger) (*Catalog, error) {
	if log == nil {
		log = slog.Default()
	}

	// Discover .lua files.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// Sort: sectors.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Open safe libs only.
	openSafeLibs(L)

	// Sandbox: remove dangerous globals.
	sandbox(L)

	// Register API.
	coll := &collector{}
	registerAPI(L, coll)

	// Execute each file.
	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	// Compile.
	cat, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling catalog: %w", err)
	}

	// Validate.
	warnings, err := validate(cat)
	for _, w := range warnings {
		log.Warn("catalog warning", "dir", dir, "detail", w)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("catalog loaded", "dir", dir, "quests", len(cat.Quests), "sectors", len(cat.Sectors))
	return cat, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library for building step and condition lists.
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	// Remove dangerous base globals.
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed and math.random: catalogs must be deterministic.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
			tbl.RawSetString("random", lua.LNil)
		}
	}
}
