package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	return runWithInput(t, "", args...)
}

func runWithInput(t *testing.T, input string, args ...string) string {
	var out bytes.Buffer
	cmd := cliParser()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(ioutil.Discard)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func writeTemp(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTrainAndPredict(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join("..", "..", "testdata", "weather.csv")
	log := filepath.Join(dir, "weather.log")
	model := filepath.Join(dir, "weather.model")
	run(t, "train", "--data", data, "--log", log, "--model", model)

	expected, err := ioutil.ReadFile(filepath.Join("..", "..", "testdata", "weather.trace"))
	require.NoError(t, err)
	trace, err := ioutil.ReadFile(log)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(trace))

	input := writeTemp(t, dir, "input.csv", "Outlook,Temperature,Humidity,Windy\nSunny,Hot,Normal,False\nRain,Mild,High,True\n")
	result := filepath.Join(dir, "result.csv")
	run(t, "predict", "--data", input, "--model", model, "--result", result)
	predictions, err := ioutil.ReadFile(result)
	require.NoError(t, err)
	assert.Equal(t, "Outlook,Temperature,Humidity,Windy,Play\nSunny,Hot,Normal,False,Yes\nRain,Mild,High,True,No\n", string(predictions))

	unknown := writeTemp(t, dir, "unknown.csv", "Outlook,Temperature,Humidity,Windy\nFoggy,Hot,Normal,False\n")
	run(t, "predict", "--data", unknown, "--model", model, "--result", result, "--unknown-label", "?")
	predictions, err = ioutil.ReadFile(result)
	require.NoError(t, err)
	assert.Equal(t, "Outlook,Temperature,Humidity,Windy,Play\nFoggy,Hot,Normal,False,?\n", string(predictions))

	run(t, "predict", "--data", data, "--model", model, "--result", result)
	predictions, err = ioutil.ReadFile(result)
	require.NoError(t, err)
	training, err := ioutil.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, string(training), string(predictions))

	out := runWithInput(t, "Foggy\nSunny\nNormal\n", "predict", "--model", model, "--interactive")
	assert.Equal(t, "Play: Yes\n", out)
	out = runWithInput(t, "?\n", "predict", "--model", model, "-i", "-u", "unknown")
	assert.Equal(t, "Play: unknown\n", out)
}

func TestModelFormats(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join("..", "..", "testdata", "weather.csv")
	for _, name := range []string{"weather.model", "weather.json", "weather.yml"} {
		model := filepath.Join(dir, name)
		run(t, "train", "--data", data, "--model", model)
		assert.Equal(t, "1.000000 success rate, failed to make a prediction for 0 samples\n", run(t, "test", "--data", data, "--model", model))
		shown := run(t, "tree", "--model", model)
		assert.Contains(t, shown, "{ split on Outlook }", name)
		assert.Contains(t, shown, "{ Play is Yes }", name)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "weather.json")
	config := writeTemp(t, dir, "id3.yml", "model: "+model+"\ntrain:\n  data: "+filepath.Join("..", "..", "testdata", "weather.csv")+"\n")
	run(t, "--config", config, "train")
	assert.Contains(t, run(t, "--config", config, "tree"), "{ split on Windy }")
}

func TestDatasetCopyToSQLite3(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "weather.db")
	run(t, "dataset", "--data", filepath.Join("..", "..", "testdata", "weather.csv"), "--output", db, "--output-table", "weather")

	model := filepath.Join(dir, "weather.model")
	run(t, "train", "--data", db, "--table", "weather", "--model", model, "--node-store", "leveldb:"+filepath.Join(dir, "nodes"))
	assert.Equal(t, "1.000000 success rate, failed to make a prediction for 0 samples\n", run(t, "test", "--data", db, "--table", "weather", "--model", model))
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "id3 v0.1.0\n", run(t, "version"))
}

func TestNodeStoreSpecs(t *testing.T) {
	_, err := nodeStore("cassandra://localhost")
	assert.Error(t, err)
	ns, err := nodeStore("memory")
	require.NoError(t, err)
	assert.NotNil(t, ns)
}

func TestQueueSpecs(t *testing.T) {
	_, _, err := taskQueue("amqp://localhost")
	assert.Error(t, err)
	q, closeQueue, err := taskQueue("memory")
	require.NoError(t, err)
	assert.NotNil(t, q)
	assert.NoError(t, closeQueue())
}
