// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package core

// Examples returns the examples of the compiled-in plugin commands.
func Examples() map[string]string {
	return map[string]string{
		"plugins": `  # list all loaded plugins
  reptor plugins

  # list plugins with their versions, authors and paths
  reptor plugins -o wide

  # list plugins that are still listed in a group but got overwritten
  # by a plugin in another group
  reptor plugins --shadowed

  # create a new private plugin "findings" in the user plugin directory
  reptor plugins --new findings`,
		"conf": `  # show the effective configuration
  reptor conf

  # enable community plugins
  reptor conf --set community=true

  # set the SysReptor server and project
  reptor conf --set server=https://demo.sysre.pt --set project_id=1234`,
	}
}
