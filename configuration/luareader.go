// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"io/ioutil"
	"path/filepath"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/util"
)

// ParseConfigurationFile - read and execute a Lua file and assign
// the results to a configuration structure
//
// globals available to the file:
//
//	arg[0]          the configuration file name
//	arg.<name>      each of the variables
//	read_file(name) contents of a file, relative names are taken
//	                from the configuration file's directory
func ParseConfigurationFile(fileName string, config interface{}, variables map[string]string) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	for k, v := range variables {
		arg.RawSetString(k, lua.LString(v))
	}
	L.SetGlobal("arg", arg)

	directory := filepath.Dir(fileName)
	L.SetGlobal("read_file", L.NewFunction(func(L *lua.LState) int {
		name := util.EnsureAbsolute(directory, L.CheckString(1))
		data, err := ioutil.ReadFile(name)
		if nil != err {
			L.RaiseError("read_file: %s", err)
			return 0
		}
		L.Push(lua.LString(data))
		return 1
	}))

	// execute configuration
	if err := L.DoFile(fileName); nil != err {
		return err
	}

	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return fault.ErrNotConfigured
	}

	mapperOption := gluamapper.Option{
		NameFunc: func(s string) string {
			return s
		},
		TagName: "gluamapper",
	}
	mapper := gluamapper.Mapper{Option: mapperOption}
	return mapper.Map(table, config)
}
