package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointWorkflow(t *testing.T) {
	db := testDBPath(t)

	_, err := runRose(t, db, "", "inventory", "import", "--yes")
	require.NoError(t, err)

	out, err := runRose(t, db, "", "checkpoint", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No checkpoints found.")

	out, err = runRose(t, db, "", "checkpoint", "create", "--tag", "opening", "-d", "fresh stock")
	require.NoError(t, err)
	assert.Contains(t, out, "Created checkpoint opening")
	assert.Contains(t, out, "day 0")
	assert.Contains(t, out, "Description: fresh stock")

	_, err = runRose(t, db, "", "checkpoint", "create", "--tag", "opening")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runRose(t, db, "", "advance", "--days", "5", "--quiet")
	require.NoError(t, err)

	out, err = runRose(t, db, "", "checkpoint", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "opening")
	assert.Contains(t, out, "manual")

	out, err = runRose(t, db, "n\n", "checkpoint", "restore", "opening")
	require.NoError(t, err)
	assert.Contains(t, out, "Restore canceled.")

	out, err = runRose(t, db, "", "inventory", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory on day 5")

	out, err = runRose(t, db, "", "checkpoint", "restore", "opening", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored from checkpoint opening")

	out, err = runRose(t, db, "", "inventory", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory on day 0")

	out, err = runRose(t, db, "y\n", "checkpoint", "delete", "opening")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted checkpoint opening")

	out, err = runRose(t, db, "", "checkpoint", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No checkpoints found.")
}

func TestCheckpoint_Missing(t *testing.T) {
	db := testDBPath(t)

	_, err := runRose(t, db, "", "checkpoint", "restore", "nope", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no checkpoint named")

	_, err = runRose(t, db, "", "checkpoint", "delete", "nope", "--yes")
	require.Error(t, err)
}

func TestAdvance_AutoCheckpoint(t *testing.T) {
	db := testDBPath(t)

	_, err := runRose(t, db, "", "inventory", "import", "--yes")
	require.NoError(t, err)

	out, err := runRose(t, db, "", "advance", "--checkpoint")
	require.NoError(t, err)
	assert.Contains(t, out, "Created checkpoint auto-advance-")

	out, err = runRose(t, db, "", "checkpoint", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "auto")
}

func TestMigrateCommand(t *testing.T) {
	db := testDBPath(t)

	out, err := runRose(t, db, "", "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 0")
	assert.Contains(t, out, "Latest version: 2")

	out, err = runRose(t, db, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version 2")

	out, err = runRose(t, db, "", "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 2")
}
