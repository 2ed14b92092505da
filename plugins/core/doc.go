/*
Package core provides the plugins compiled into reptor: “plugins” for listing
the loaded plugins and creating new private plugins, and “conf” for showing
and changing the configuration. They register as [plugins.Builtin] plugins,
so they get loaded first and can be overwritten by plugin scripts of the same
name, like any other core plugin.

The package needs to be imported for its side effects only.
*/
package core
