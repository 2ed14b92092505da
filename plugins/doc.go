/*
Package plugins discovers, loads and registers reptor plugins, and publishes
them as the command registry to the CLI.

# Tiers

Plugins are loaded tier by tier in this fixed order, with later tiers
overwriting plugins of the same name from earlier tiers:

  - core: compiled-in plugins, followed by the core plugin directory.
  - official: official plugins shipped with reptor.
  - community: community plugins; only when enabled in the configuration.
  - importer: importer plugins.
  - exporter: exporter plugins.
  - user: the user's private plugins.

# Plugin Units

Within a tier directory, each "*.lua" file directly inside the directory or
inside one of its immediate sub-directories is a candidate. Each candidate is
run in its own Lua state and must assign its entry point table to the global
"loader" in order to become a plugin:

	Projects = {
	  group = "tools",
	  meta = { author = "Syslifters", version = "1.0", summary = "Queries projects" },
	}

	function Projects.run(args)
	  display("hello from projects")
	end

	loader = Projects

The plugin name is the lower-cased name of the global holding the entry point
("projects" in the example above), not the name in the metadata block. The
metadata block can alternatively be given as a YAML document string. Files
without a "loader" entry point are silently skipped; scripts raising errors
abort loading altogether.

Compiled-in plugins register a [Builtin] factory with the go-plugger plugin
group of the same type in their package init functions.

# Registry

The [Registry] keeps the plugins per command [Group] in their loading order.
Overwriting a plugin moves the new plugin to the end of its group and links
the overwritten plugin via [api.PluginDocs.Overwrites] for diagnostics only.
The flat name index always refers to the plugin loaded last under a name, even
if that plugin is in a different group than the plugin it replaces; see
[Registry.Shadowed] for detecting such group entries.
*/
package plugins
