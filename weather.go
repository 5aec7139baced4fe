/*
weather exposes weather conditions and local-search results for Halden,
Norway as a set of tools behind an MCP stdio server. Forecast data comes
from the MET Norway Locationforecast API and venue suggestions from the
Brave web search API.
*/
package weather
